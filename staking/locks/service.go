// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package locks

import (
	"math/big"

	"github.com/tierlock/tierlock/slots"
	"github.com/tierlock/tierlock/staking/reverts"
	"github.com/tierlock/tierlock/tier"
)

// Service maintains the append-only lock collection plus the per-user
// locked totals, kept incrementally consistent with the lock balances.
type Service struct {
	storage *Storage
}

func New(sctx *slots.Context) *Service {
	return &Service{storage: NewStorage(sctx)}
}

// Create appends a new lock for owner and returns its id and owner-scoped index.
func (s *Service) Create(owner tier.Address, amount *big.Int, now uint64) (tier.Bytes32, uint64, error) {
	index, err := s.storage.getUserLockCount(owner)
	if err != nil {
		return tier.Bytes32{}, 0, err
	}

	id := ID(owner, index)
	entry := &Lock{
		Owner:            owner,
		Principal:        amount,
		RemainingBalance: new(big.Int).Set(amount),
		CreatedAt:        now,
	}
	if err := s.storage.setLock(id, entry); err != nil {
		return tier.Bytes32{}, 0, err
	}
	if err := s.storage.setUserLock(owner, index, id); err != nil {
		return tier.Bytes32{}, 0, err
	}
	if err := s.storage.setUserLockCount(owner, index+1); err != nil {
		return tier.Bytes32{}, 0, err
	}

	total, err := s.storage.getUserTotal(owner)
	if err != nil {
		return tier.Bytes32{}, 0, err
	}
	if err := s.storage.setUserTotal(owner, total.Add(total, amount)); err != nil {
		return tier.Bytes32{}, 0, err
	}
	return id, index, nil
}

// Get returns the lock record for the given id.
// Unknown ids yield an empty record, not an error.
func (s *Service) Get(id tier.Bytes32) (*Lock, error) {
	return s.storage.getLock(id)
}

// UserLockID returns the id of owner's lock at the given index.
func (s *Service) UserLockID(owner tier.Address, index uint64) (tier.Bytes32, error) {
	return s.storage.getUserLock(owner, index)
}

// UserLockCount returns how many locks have ever been created for owner.
func (s *Service) UserLockCount(owner tier.Address) (uint64, error) {
	return s.storage.getUserLockCount(owner)
}

// UserTotal returns the sum of remaining balances over owner's locks.
// Unknown users have a zero total.
func (s *Service) UserTotal(owner tier.Address) (*big.Int, error) {
	return s.storage.getUserTotal(owner)
}

// Find resolves caller's lock by (id, index) and validates that it can cover
// the requested amount. A missing lock, an id/index mismatch, foreign
// ownership or an insufficient balance all fail the same way, so a caller
// cannot probe other users' ledger entries.
func (s *Service) Find(caller tier.Address, id tier.Bytes32, index uint64, amount *big.Int) (*Lock, error) {
	indexed, err := s.storage.getUserLock(caller, index)
	if err != nil {
		return nil, err
	}
	if indexed.IsZero() || indexed != id {
		return nil, reverts.ErrInsufficientLockedBalance
	}

	entry, err := s.storage.getLock(id)
	if err != nil {
		return nil, err
	}
	if entry.IsEmpty() || entry.Owner != caller {
		return nil, reverts.ErrInsufficientLockedBalance
	}
	if entry.RemainingBalance.Cmp(amount) < 0 {
		return nil, reverts.ErrInsufficientLockedBalance
	}
	return entry, nil
}

// Decrease draws the given amount down from the lock and the owner's total.
// Callers must have validated the amount via Find.
func (s *Service) Decrease(id tier.Bytes32, entry *Lock, amount *big.Int) error {
	entry.RemainingBalance = new(big.Int).Sub(entry.RemainingBalance, amount)
	if err := s.storage.setLock(id, entry); err != nil {
		return err
	}

	total, err := s.storage.getUserTotal(entry.Owner)
	if err != nil {
		return err
	}
	return s.storage.setUserTotal(entry.Owner, total.Sub(total, amount))
}
