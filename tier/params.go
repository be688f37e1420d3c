// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tier

import "math/big"

// Constants of the staking ledger.
const (
	// FeeDenominator is the fixed-point base of the emergency withdrawal fee rate.
	// A rate of 120 means 1.2% of the gross withdrawal amount.
	FeeDenominator uint64 = 10000

	// InitialUnlockDuration is the default minimum elapsed time (unit: second)
	// before a lock can be withdrawn without fee.
	InitialUnlockDuration uint64 = 60 * 60 * 24 * 30

	// InitialEmergencyFeeRate is the default early withdrawal fee, 1.2%.
	InitialEmergencyFeeRate uint64 = 120

	// InitialPoolMultiplier scales locked value into pool weight.
	InitialPoolMultiplier uint64 = 12

	// InitialTierID identifies the bronze tier.
	InitialTierID uint64 = 1
)

// Keys of staking config params.
var (
	KeyOwner                  = BytesToBytes32([]byte("owner"))
	KeyDepositor              = BytesToBytes32([]byte("depositor"))
	KeyFeeRecipient           = BytesToBytes32([]byte("fee-recipient"))
	KeyTierID                 = BytesToBytes32([]byte("tier-id"))
	KeyPoolMultiplier         = BytesToBytes32([]byte("pool-multiplier"))
	KeyEmergencyFeeRate       = BytesToBytes32([]byte("emergency-fee-rate"))
	KeyUnlockDuration         = BytesToBytes32([]byte("unlock-duration"))
	KeyEarlyWithdrawalEnabled = BytesToBytes32([]byte("early-withdrawal-enabled"))
	KeyRewardsEnabled         = BytesToBytes32([]byte("rewards-enabled"))
)

var (
	// TokenUnit is the smallest-unit representation of one whole token (18 decimals).
	TokenUnit = big.NewInt(1e18)

	// MinDeposit is the protocol minimum deposit, 1000 whole tokens.
	MinDeposit = new(big.Int).Mul(big.NewInt(1000), TokenUnit)
)

// WholeTokens converts a whole-token count into the smallest unit.
func WholeTokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), TokenUnit)
}
