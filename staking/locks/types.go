// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package locks

import (
	"encoding/binary"
	"math/big"

	"github.com/tierlock/tierlock/tier"
)

// Lock is a single deposit record. Principal and CreatedAt are immutable;
// RemainingBalance only ever decreases and never goes below zero.
type Lock struct {
	Owner            tier.Address
	Principal        *big.Int
	RemainingBalance *big.Int
	CreatedAt        uint64
}

// IsEmpty returns true for the zero record of an unknown lock id.
func (l *Lock) IsEmpty() bool {
	return l.Owner.IsZero() && l.Principal == nil
}

// Exhausted reports whether the lock has been fully withdrawn.
// An exhausted lock is terminal; it persists but accepts no further withdrawal.
func (l *Lock) Exhausted() bool {
	return l.RemainingBalance == nil || l.RemainingBalance.Sign() == 0
}

// ID derives the globally unique lock identifier from the owner and the
// owner-scoped lock index. Indexes are assigned in insertion order and
// never reused.
func ID(owner tier.Address, index uint64) tier.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return tier.Blake2b(owner.Bytes(), b[:])
}

// indexKey addresses the per-user lock id list: owner || big-endian index.
type indexKey struct {
	owner tier.Address
	index uint64
}

func (k indexKey) Bytes() []byte {
	b := make([]byte, 0, tier.AddressLength+8)
	b = append(b, k.owner.Bytes()...)
	return binary.BigEndian.AppendUint64(b, k.index)
}
