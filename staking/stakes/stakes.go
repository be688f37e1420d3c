// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"

	"github.com/tierlock/tierlock/tier"
)

// Weighted scales a locked amount by the pool multiplier.
func Weighted(amount *big.Int, multiplier uint64) *big.Int {
	return new(big.Int).Mul(amount, new(big.Int).SetUint64(multiplier))
}

// Fee computes the emergency withdrawal fee for a gross amount at the given
// rate (parts per ten thousand). The division floors, so dust rounds in favor
// of the withdrawing user.
func Fee(amount *big.Int, rate uint64) *big.Int {
	fee := new(big.Int).Mul(amount, new(big.Int).SetUint64(rate))
	return fee.Div(fee, new(big.Int).SetUint64(tier.FeeDenominator))
}

// Payout splits a gross withdrawal amount into net payout and fee.
// A zero rate yields the full amount.
func Payout(amount *big.Int, rate uint64) (net, fee *big.Int) {
	fee = Fee(amount, rate)
	net = new(big.Int).Sub(amount, fee)
	return net, fee
}
