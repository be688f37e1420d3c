// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package locks

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tierlock/tierlock/slots"
	"github.com/tierlock/tierlock/tier"
)

var (
	slotLocks          = tier.BytesToBytes32([]byte("locks"))
	slotUserLocks      = tier.BytesToBytes32([]byte("user-locks"))
	slotUserLockCounts = tier.BytesToBytes32([]byte("user-lock-counts"))
	slotUserTotals     = tier.BytesToBytes32([]byte("user-locked-totals"))
)

type Storage struct {
	locks          *slots.Mapping[tier.Bytes32, Lock]
	userLocks      *slots.Mapping[indexKey, tier.Bytes32]
	userLockCounts *slots.Mapping[tier.Address, uint64]
	userTotals     *slots.Mapping[tier.Address, *big.Int]
}

func NewStorage(sctx *slots.Context) *Storage {
	return &Storage{
		locks:          slots.NewMapping[tier.Bytes32, Lock](sctx, slotLocks),
		userLocks:      slots.NewMapping[indexKey, tier.Bytes32](sctx, slotUserLocks),
		userLockCounts: slots.NewMapping[tier.Address, uint64](sctx, slotUserLockCounts),
		userTotals:     slots.NewMapping[tier.Address, *big.Int](sctx, slotUserTotals),
	}
}

func (s *Storage) getLock(id tier.Bytes32) (*Lock, error) {
	l, err := s.locks.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get lock")
	}
	return &l, nil
}

func (s *Storage) setLock(id tier.Bytes32, entry *Lock) error {
	if err := s.locks.Set(id, *entry); err != nil {
		return errors.Wrap(err, "failed to set lock")
	}
	return nil
}

func (s *Storage) getUserLock(owner tier.Address, index uint64) (tier.Bytes32, error) {
	id, err := s.userLocks.Get(indexKey{owner, index})
	if err != nil {
		return tier.Bytes32{}, errors.Wrap(err, "failed to get user lock id")
	}
	return id, nil
}

func (s *Storage) setUserLock(owner tier.Address, index uint64, id tier.Bytes32) error {
	if err := s.userLocks.Set(indexKey{owner, index}, id); err != nil {
		return errors.Wrap(err, "failed to set user lock id")
	}
	return nil
}

func (s *Storage) getUserLockCount(owner tier.Address) (uint64, error) {
	count, err := s.userLockCounts.Get(owner)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get user lock count")
	}
	return count, nil
}

func (s *Storage) setUserLockCount(owner tier.Address, count uint64) error {
	if err := s.userLockCounts.Set(owner, count); err != nil {
		return errors.Wrap(err, "failed to set user lock count")
	}
	return nil
}

func (s *Storage) getUserTotal(owner tier.Address) (*big.Int, error) {
	total, err := s.userTotals.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user locked total")
	}
	if total == nil {
		return new(big.Int), nil
	}
	return total, nil
}

func (s *Storage) setUserTotal(owner tier.Address, total *big.Int) error {
	if err := s.userTotals.Set(owner, total); err != nil {
		return errors.Wrap(err, "failed to set user locked total")
	}
	return nil
}
