// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"github.com/tierlock/tierlock/staking"
)

type Status struct {
	Healthy           bool `json:"healthy"`
	LedgerInitialized bool `json:"ledgerInitialized"`
}

type health struct {
	engine *staking.Staking
}

func newHealth(engine *staking.Staking) *health {
	return &health{engine: engine}
}

// status probes the backing store with a config read. A failed read means the
// database is unreachable; a zero owner means the ledger was never initialized.
func (h *health) status() (*Status, error) {
	cfg, err := h.engine.GetConfig()
	if err != nil {
		return &Status{}, nil
	}

	initialized := !cfg.Owner.IsZero()
	return &Status{
		Healthy:           initialized,
		LedgerInitialized: initialized,
	}, nil
}
