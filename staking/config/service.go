// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/pkg/errors"

	"github.com/tierlock/tierlock/slots"
	"github.com/tierlock/tierlock/tier"
)

// Config is a read-only snapshot of the operating parameters.
type Config struct {
	Owner                  tier.Address `json:"owner"`
	Depositor              tier.Address `json:"depositor"`
	FeeRecipient           tier.Address `json:"feeRecipient"`
	TierID                 uint64       `json:"tierId"`
	Multiplier             uint64       `json:"multiplier"`
	EmergencyFeeRate       uint64       `json:"emergencyFeeRate"`
	UnlockDuration         uint64       `json:"unlockDuration"`
	EarlyWithdrawalEnabled bool         `json:"earlyWithdrawalEnabled"`
	RewardsEnabled         bool         `json:"rewardsEnabled"`
}

// Service is the config store. Writes are raw; role gating happens at the
// engine entry points.
type Service struct {
	owner            *slots.AddressVar
	depositor        *slots.AddressVar
	feeRecipient     *slots.AddressVar
	tierID           *slots.Uint64
	multiplier       *slots.Uint64
	emergencyFeeRate *slots.Uint64
	unlockDuration   *slots.Uint64
	earlyWithdrawal  *slots.Bool
	rewardsEnabled   *slots.Bool
}

func New(sctx *slots.Context) *Service {
	return &Service{
		owner:            slots.NewAddressVar(sctx, tier.KeyOwner),
		depositor:        slots.NewAddressVar(sctx, tier.KeyDepositor),
		feeRecipient:     slots.NewAddressVar(sctx, tier.KeyFeeRecipient),
		tierID:           slots.NewUint64(sctx, tier.KeyTierID),
		multiplier:       slots.NewUint64(sctx, tier.KeyPoolMultiplier),
		emergencyFeeRate: slots.NewUint64(sctx, tier.KeyEmergencyFeeRate),
		unlockDuration:   slots.NewUint64(sctx, tier.KeyUnlockDuration),
		earlyWithdrawal:  slots.NewBool(sctx, tier.KeyEarlyWithdrawalEnabled),
		rewardsEnabled:   slots.NewBool(sctx, tier.KeyRewardsEnabled),
	}
}

// Initialize seeds the config with protocol defaults.
// It fails if the store has already been initialized.
func (s *Service) Initialize(owner, depositor, feeRecipient tier.Address) error {
	existing, err := s.owner.Get()
	if err != nil {
		return err
	}
	if !existing.IsZero() {
		return errors.New("config already initialized")
	}

	s.owner.Set(owner)
	s.depositor.Set(depositor)
	s.feeRecipient.Set(feeRecipient)
	s.tierID.Set(tier.InitialTierID)
	s.multiplier.Set(tier.InitialPoolMultiplier)
	s.emergencyFeeRate.Set(tier.InitialEmergencyFeeRate)
	s.unlockDuration.Set(tier.InitialUnlockDuration)
	s.earlyWithdrawal.Set(false)
	s.rewardsEnabled.Set(false)
	return nil
}

// Get returns a full snapshot of the config.
func (s *Service) Get() (*Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Owner, err = s.owner.Get(); err != nil {
		return nil, err
	}
	if cfg.Depositor, err = s.depositor.Get(); err != nil {
		return nil, err
	}
	if cfg.FeeRecipient, err = s.feeRecipient.Get(); err != nil {
		return nil, err
	}
	if cfg.TierID, err = s.tierID.Get(); err != nil {
		return nil, err
	}
	if cfg.Multiplier, err = s.multiplier.Get(); err != nil {
		return nil, err
	}
	if cfg.EmergencyFeeRate, err = s.emergencyFeeRate.Get(); err != nil {
		return nil, err
	}
	if cfg.UnlockDuration, err = s.unlockDuration.Get(); err != nil {
		return nil, err
	}
	if cfg.EarlyWithdrawalEnabled, err = s.earlyWithdrawal.Get(); err != nil {
		return nil, err
	}
	if cfg.RewardsEnabled, err = s.rewardsEnabled.Get(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Service) Owner() (tier.Address, error) {
	return s.owner.Get()
}

func (s *Service) Depositor() (tier.Address, error) {
	return s.depositor.Get()
}

func (s *Service) FeeRecipient() (tier.Address, error) {
	return s.feeRecipient.Get()
}

func (s *Service) Multiplier() (uint64, error) {
	return s.multiplier.Get()
}

func (s *Service) EmergencyFeeRate() (uint64, error) {
	return s.emergencyFeeRate.Get()
}

func (s *Service) UnlockDuration() (uint64, error) {
	return s.unlockDuration.Get()
}

func (s *Service) EarlyWithdrawalEnabled() (bool, error) {
	return s.earlyWithdrawal.Get()
}

func (s *Service) SetOwner(addr tier.Address) {
	s.owner.Set(addr)
}

func (s *Service) SetDepositor(addr tier.Address) {
	s.depositor.Set(addr)
}

func (s *Service) SetFeeRecipient(addr tier.Address) {
	s.feeRecipient.Set(addr)
}

func (s *Service) SetMultiplier(multiplier uint64) {
	s.multiplier.Set(multiplier)
}

// SetEmergencyFeeRate stores a new fee rate.
// The rate is capped by the fee denominator so a fee can never exceed principal.
func (s *Service) SetEmergencyFeeRate(rate uint64) error {
	if rate > tier.FeeDenominator {
		return errors.New("fee rate exceeds denominator")
	}
	s.emergencyFeeRate.Set(rate)
	return nil
}

func (s *Service) SetUnlockDuration(duration uint64) {
	s.unlockDuration.Set(duration)
}

func (s *Service) SetEarlyWithdrawalEnabled(enabled bool) {
	s.earlyWithdrawal.Set(enabled)
}

func (s *Service) SetRewardsEnabled(enabled bool) {
	s.rewardsEnabled.Set(enabled)
}
