// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
)

// Context scopes slot access to a single ledger component address.
type Context struct {
	address tier.Address
	state   *state.State
}

func NewContext(address tier.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() tier.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
