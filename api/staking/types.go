// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/tierlock/tierlock/staking/locks"
	"github.com/tierlock/tierlock/tier"
)

// LockPayload is the request body for creating a lock.
type LockPayload struct {
	Caller      tier.Address          `json:"caller"`
	Beneficiary tier.Address          `json:"beneficiary"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Timestamp   uint64                `json:"timestamp,omitempty"`
}

// WithdrawPayload is the request body for withdrawing from a lock.
type WithdrawPayload struct {
	Caller    tier.Address          `json:"caller"`
	LockID    tier.Bytes32          `json:"lockId"`
	Index     uint64                `json:"index"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Timestamp uint64                `json:"timestamp,omitempty"`
}

// WithdrawReceipt reports how a withdrawal was split.
type WithdrawReceipt struct {
	Net *math.HexOrDecimal256 `json:"net"`
	Fee *math.HexOrDecimal256 `json:"fee"`
}

// LockReceipt reports the identity of a freshly created lock.
type LockReceipt struct {
	LockID tier.Bytes32 `json:"lockId"`
	Index  uint64       `json:"index"`
}

// Lock is the response form of a lock record.
type Lock struct {
	Owner            tier.Address          `json:"owner"`
	Principal        *math.HexOrDecimal256 `json:"principal"`
	RemainingBalance *math.HexOrDecimal256 `json:"remainingBalance"`
	CreatedAt        uint64                `json:"createdAt"`
}

// Account aggregates a user's position.
type Account struct {
	LockedTotal *math.HexOrDecimal256 `json:"lockedTotal"`
	LockCount   uint64                `json:"lockCount"`
}

// Pool reports the weighted pool shares for one user.
type Pool struct {
	UserWeighted   *math.HexOrDecimal256 `json:"userWeighted"`
	GlobalWeighted *math.HexOrDecimal256 `json:"globalWeighted"`
}

// AddressPayload carries an owner-gated address change.
type AddressPayload struct {
	Caller  tier.Address `json:"caller"`
	Address tier.Address `json:"address"`
}

// ValuePayload carries an owner-gated numeric change.
type ValuePayload struct {
	Caller tier.Address `json:"caller"`
	Value  uint64       `json:"value"`
}

// FlagPayload carries an owner-gated flag change.
type FlagPayload struct {
	Caller  tier.Address `json:"caller"`
	Enabled bool         `json:"enabled"`
}

func convertLock(entry *locks.Lock) *Lock {
	return &Lock{
		Owner:            entry.Owner,
		Principal:        bigToHex(entry.Principal),
		RemainingBalance: bigToHex(entry.RemainingBalance),
		CreatedAt:        entry.CreatedAt,
	}
}

func bigToHex(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(v)
}

func hexToBig(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return (*big.Int)(v)
}
