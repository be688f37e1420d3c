// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/tierlock/tierlock/slots"
	"github.com/tierlock/tierlock/tier"
)

var (
	slotLockedTotal   = tier.BytesToBytes32([]byte("total-locked"))
	slotDepositCount  = tier.BytesToBytes32([]byte("deposit-count"))
	slotWithdrawCount = tier.BytesToBytes32([]byte("withdraw-count"))
)

// Service manages ledger-wide totals, updated transactionally alongside
// every lock mutation rather than recomputed by scanning.
type Service struct {
	lockedTotal   *slots.Uint256
	depositCount  *slots.Uint256
	withdrawCount *slots.Uint256
}

func New(sctx *slots.Context) *Service {
	return &Service{
		lockedTotal:   slots.NewUint256(sctx, slotLockedTotal),
		depositCount:  slots.NewUint256(sctx, slotDepositCount),
		withdrawCount: slots.NewUint256(sctx, slotWithdrawCount),
	}
}

// LockedTotal returns the sum of remaining balances over all locks.
func (s *Service) LockedTotal() (*big.Int, error) {
	return s.lockedTotal.Get()
}

// AddLocked increases the global total when a deposit creates a lock.
func (s *Service) AddLocked(amount *big.Int) error {
	if err := s.lockedTotal.Add(amount); err != nil {
		return err
	}
	return s.depositCount.Add(big.NewInt(1))
}

// SubLocked decreases the global total by the gross withdrawal amount.
func (s *Service) SubLocked(amount *big.Int) error {
	if err := s.lockedTotal.Sub(amount); err != nil {
		return err
	}
	return s.withdrawCount.Add(big.NewInt(1))
}

// DepositCount returns how many deposits were ever accepted.
func (s *Service) DepositCount() (*big.Int, error) {
	return s.depositCount.Get()
}

// WithdrawCount returns how many withdrawals were ever applied.
func (s *Service) WithdrawCount() (*big.Int, error) {
	return s.withdrawCount.Get()
}
