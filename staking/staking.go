// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"sync"

	"github.com/tierlock/tierlock/log"
	"github.com/tierlock/tierlock/metrics"
	"github.com/tierlock/tierlock/slots"
	"github.com/tierlock/tierlock/staking/config"
	"github.com/tierlock/tierlock/staking/globalstats"
	"github.com/tierlock/tierlock/staking/locks"
	"github.com/tierlock/tierlock/staking/reverts"
	"github.com/tierlock/tierlock/staking/stakes"
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
	"github.com/tierlock/tierlock/token"
)

var logger = log.WithContext("pkg", "staking")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

var (
	metricDeposits = metrics.LazyLoad(func() metrics.CountMeter {
		return metrics.Counter("staking_deposit_count")
	})
	metricWithdrawals = metrics.LazyLoad(func() metrics.CountMeter {
		return metrics.Counter("staking_withdrawal_count")
	})
	metricRejected = metrics.LazyLoad(func() metrics.CountVecMeter {
		return metrics.CounterVec("staking_rejected_count", []string{"op"})
	})
	metricLockedTotal = metrics.LazyLoad(func() metrics.GaugeMeter {
		return metrics.Gauge("staking_locked_tokens")
	})
)

// Staking is the lock accounting engine. It creates locks on behalf of the
// authorized depositor, answers weighted pool share queries and resolves
// withdrawals. Every mutating call runs to completion under a single
// mutual-exclusion boundary and either commits in full or reverts in full.
type Staking struct {
	mu    sync.Mutex
	addr  tier.Address
	state *state.State
	token *token.Token

	configService *config.Service
	lockService   *locks.Service
	statsService  *globalstats.Service
}

// New create a new instance bound to the given escrow address.
func New(addr tier.Address, state *state.State, token *token.Token) *Staking {
	sctx := slots.NewContext(addr, state)

	return &Staking{
		addr:  addr,
		state: state,
		token: token,

		configService: config.New(sctx),
		lockService:   locks.New(sctx),
		statsService:  globalstats.New(sctx),
	}
}

// Initialize seeds the config store with the initial depositor and fee
// recipient. It must be called exactly once before any other operation.
func (s *Staking) Initialize(owner, depositor, feeRecipient tier.Address) error {
	return s.mutate(func() error {
		if owner.IsZero() || depositor.IsZero() || feeRecipient.IsZero() {
			return reverts.ErrInvalidAddress
		}
		return s.configService.Initialize(owner, depositor, feeRecipient)
	})
}

// mutate runs fn as one atomic unit: all state it touched is reverted when
// fn fails, committed to disk when it succeeds.
func (s *Staking) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkpoint := s.state.NewCheckpoint()
	if err := fn(); err != nil {
		s.state.RevertTo(checkpoint)
		return err
	}
	return s.state.Commit()
}

//
// Getters - no state change
//

// GetPoolPercentages returns the user's weighted locked value and the global
// weighted locked value, both scaled by the pool multiplier. Unknown users
// yield a zero user value.
func (s *Staking) GetPoolPercentages(user tier.Address) (*big.Int, *big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	multiplier, err := s.configService.Multiplier()
	if err != nil {
		return nil, nil, err
	}
	userTotal, err := s.lockService.UserTotal(user)
	if err != nil {
		return nil, nil, err
	}
	globalTotal, err := s.statsService.LockedTotal()
	if err != nil {
		return nil, nil, err
	}
	return stakes.Weighted(userTotal, multiplier), stakes.Weighted(globalTotal, multiplier), nil
}

// GetConfig returns a snapshot of the current operating parameters.
func (s *Staking) GetConfig() (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.configService.Get()
}

// GetUserLock returns the id of the user's lock at the given index.
func (s *Staking) GetUserLock(user tier.Address, index uint64) (tier.Bytes32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lockService.UserLockID(user, index)
}

// GetUserLockCount returns how many locks were ever created for the user.
func (s *Staking) GetUserLockCount(user tier.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lockService.UserLockCount(user)
}

// GetLock returns the lock record for the given id, or an empty record for
// unknown ids.
func (s *Staking) GetLock(id tier.Bytes32) (*locks.Lock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lockService.Get(id)
}

// UserLockedTotal returns the sum of remaining balances over the user's locks.
func (s *Staking) UserLockedTotal(user tier.Address) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lockService.UserTotal(user)
}

// GlobalLockedTotal returns the sum of remaining balances over all locks.
func (s *Staking) GlobalLockedTotal() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statsService.LockedTotal()
}

//
// Setters - state change
//

// Lock debits amount from the caller and creates a new lock for the
// beneficiary. Only the configured depositor may call it, and the amount
// must meet the protocol minimum.
// It returns the new lock's id and its beneficiary-scoped index.
func (s *Staking) Lock(caller, beneficiary tier.Address, amount *big.Int, now uint64) (tier.Bytes32, uint64, error) {
	var (
		id    tier.Bytes32
		index uint64
	)
	err := s.mutate(func() error {
		if beneficiary.IsZero() {
			return reverts.ErrInvalidAddress
		}
		if amount == nil || amount.Sign() == 0 {
			return reverts.ErrInvalidAmount
		}
		depositor, err := s.configService.Depositor()
		if err != nil {
			return err
		}
		if caller != depositor {
			return reverts.ErrUnauthorized
		}
		if amount.Cmp(tier.MinDeposit) < 0 {
			return reverts.ErrBelowMinimum
		}

		// funds move first; a failed debit aborts before any ledger mutation
		if err := s.token.Transfer(caller, s.addr, amount); err != nil {
			return err
		}

		if id, index, err = s.lockService.Create(beneficiary, amount, now); err != nil {
			return err
		}
		if err := s.statsService.AddLocked(amount); err != nil {
			return err
		}

		logger.Info("locked", "beneficiary", beneficiary, "id", id.AbbrevString(), "index", index, "amount", amount)
		return nil
	})
	if err != nil {
		logger.Info("lock failed", "beneficiary", beneficiary, "error", err)
		metricRejected().AddWithLabel(1, map[string]string{"op": "lock"})
		return tier.Bytes32{}, 0, err
	}

	metricDeposits().Add(1)
	s.updateLockedGauge()
	return id, index, nil
}

// Withdraw draws the requested amount down from the caller's lock and pays it
// out. Withdrawals after the unlock duration carry no fee; earlier ones are
// rejected unless early withdrawal is enabled, in which case the emergency fee
// is deducted from the payout and credited to the fee recipient. The lock and
// all totals always decrease by the gross amount, so the fee never distorts
// other users' pool shares.
// It returns the net payout and the fee.
func (s *Staking) Withdraw(caller tier.Address, id tier.Bytes32, index uint64, amount *big.Int, now uint64) (*big.Int, *big.Int, error) {
	var net, fee *big.Int
	err := s.mutate(func() error {
		if amount == nil || amount.Sign() == 0 {
			return reverts.ErrInvalidAmount
		}

		entry, err := s.lockService.Find(caller, id, index, amount)
		if err != nil {
			return err
		}

		rate, err := s.withdrawalFeeRate(entry, now)
		if err != nil {
			return err
		}
		net, fee = stakes.Payout(amount, rate)

		if err := s.token.Transfer(s.addr, caller, net); err != nil {
			return err
		}
		if fee.Sign() > 0 {
			feeRecipient, err := s.configService.FeeRecipient()
			if err != nil {
				return err
			}
			if err := s.token.Transfer(s.addr, feeRecipient, fee); err != nil {
				return err
			}
		}

		if err := s.lockService.Decrease(id, entry, amount); err != nil {
			return err
		}
		if err := s.statsService.SubLocked(amount); err != nil {
			return err
		}

		logger.Info("withdrawn", "owner", caller, "id", id.AbbrevString(), "amount", amount, "net", net, "fee", fee)
		return nil
	})
	if err != nil {
		logger.Info("withdraw failed", "owner", caller, "id", id.AbbrevString(), "error", err)
		metricRejected().AddWithLabel(1, map[string]string{"op": "withdraw"})
		return nil, nil, err
	}

	metricWithdrawals().Add(1)
	s.updateLockedGauge()
	return net, fee, nil
}

// withdrawalFeeRate decides time eligibility for a withdrawal at time now and
// returns the applicable fee rate. On-time withdrawals are free regardless of
// the early withdrawal flag.
func (s *Staking) withdrawalFeeRate(entry *locks.Lock, now uint64) (uint64, error) {
	var elapsed uint64
	if now > entry.CreatedAt {
		elapsed = now - entry.CreatedAt
	}

	unlockDuration, err := s.configService.UnlockDuration()
	if err != nil {
		return 0, err
	}
	if elapsed >= unlockDuration {
		return 0, nil
	}

	enabled, err := s.configService.EarlyWithdrawalEnabled()
	if err != nil {
		return 0, err
	}
	if !enabled {
		return 0, reverts.ErrEarlyWithdrawalDisabled
	}
	return s.configService.EmergencyFeeRate()
}

//
// Owner-gated config mutators
//

func (s *Staking) requireOwner(caller tier.Address) error {
	owner, err := s.configService.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.ErrUnauthorized
	}
	return nil
}

// SetDepositor replaces the address authorized to create locks.
func (s *Staking) SetDepositor(caller, addr tier.Address) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if addr.IsZero() {
			return reverts.ErrInvalidAddress
		}
		s.configService.SetDepositor(addr)
		logger.Info("depositor changed", "depositor", addr)
		return nil
	})
}

// SetFeeRecipient replaces the address credited with emergency fees.
func (s *Staking) SetFeeRecipient(caller, addr tier.Address) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if addr.IsZero() {
			return reverts.ErrInvalidAddress
		}
		s.configService.SetFeeRecipient(addr)
		logger.Info("fee recipient changed", "feeRecipient", addr)
		return nil
	})
}

// ChangeUnlockDuration changes the minimum elapsed time for fee-free
// withdrawals. Already-created locks keep their stored creation time; only
// the policy applied at withdrawal time changes.
func (s *Staking) ChangeUnlockDuration(caller tier.Address, duration uint64) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		s.configService.SetUnlockDuration(duration)
		logger.Info("unlock duration changed", "duration", duration)
		return nil
	})
}

// ChangeEarlyWithdrawal toggles fee-discounted withdrawals before the unlock
// duration has elapsed.
func (s *Staking) ChangeEarlyWithdrawal(caller tier.Address, enabled bool) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		s.configService.SetEarlyWithdrawalEnabled(enabled)
		logger.Info("early withdrawal changed", "enabled", enabled)
		return nil
	})
}

// ChangePoolMultiplier changes the weight multiplier used by pool queries.
func (s *Staking) ChangePoolMultiplier(caller tier.Address, multiplier uint64) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if multiplier == 0 {
			return reverts.ErrInvalidAmount
		}
		s.configService.SetMultiplier(multiplier)
		logger.Info("pool multiplier changed", "multiplier", multiplier)
		return nil
	})
}

// ChangeFee changes the emergency withdrawal fee rate (parts per ten thousand).
func (s *Staking) ChangeFee(caller tier.Address, rate uint64) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if err := s.configService.SetEmergencyFeeRate(rate); err != nil {
			return reverts.ErrInvalidAmount
		}
		logger.Info("emergency fee changed", "rate", rate)
		return nil
	})
}

// EnableRewards flips the informational rewards flag consumed by the external
// reward subsystem.
func (s *Staking) EnableRewards(caller tier.Address, enabled bool) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		s.configService.SetRewardsEnabled(enabled)
		logger.Info("rewards flag changed", "enabled", enabled)
		return nil
	})
}

// TransferOwnership hands the owner role to a new address.
func (s *Staking) TransferOwnership(caller, newOwner tier.Address) error {
	return s.mutate(func() error {
		if err := s.requireOwner(caller); err != nil {
			return err
		}
		if newOwner.IsZero() {
			return reverts.ErrInvalidAddress
		}
		s.configService.SetOwner(newOwner)
		logger.Info("ownership transferred", "owner", newOwner)
		return nil
	})
}

func (s *Staking) updateLockedGauge() {
	s.mu.Lock()
	total, err := s.statsService.LockedTotal()
	s.mu.Unlock()
	if err != nil {
		return
	}
	metricLockedTotal().Set(new(big.Int).Div(total, tier.TokenUnit).Int64())
}
