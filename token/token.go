// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
)

var totalSupplyKey = tier.Blake2b([]byte("total-supply"))

// ErrInsufficientBalance is returned when a transfer debits more than the
// holder's balance. The surrounding operation must treat it as a full abort.
var ErrInsufficientBalance = errors.New("insufficient token balance")

func accountKey(addr tier.Address) tier.Bytes32 {
	return tier.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

// Token is the fungible token ledger backing deposits and withdrawals.
// It moves balances atomically within the enclosing state checkpoint.
type Token struct {
	addr  tier.Address
	state *state.State
}

// New create a new instance.
func New(addr tier.Address, state *state.State) *Token {
	return &Token{addr, state}
}

func (t *Token) getAmount(key tier.Bytes32) (*big.Int, error) {
	storage, err := t.state.GetStorage(t.addr, key)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (t *Token) setAmount(key tier.Bytes32, amount *big.Int) {
	t.state.SetStorage(t.addr, key, tier.BytesToBytes32(amount.Bytes()))
}

// InitializeSupply mints the initial token supply to the given holder.
func (t *Token) InitializeSupply(holder tier.Address, supply *big.Int) error {
	existing, err := t.getAmount(totalSupplyKey)
	if err != nil {
		return err
	}
	if existing.Sign() != 0 {
		return errors.New("token supply already initialized")
	}
	t.setAmount(totalSupplyKey, supply)
	t.setAmount(accountKey(holder), supply)
	return nil
}

// TotalSupply returns total supply of the token.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.getAmount(totalSupplyKey)
}

// Balance returns token balance of an account.
func (t *Token) Balance(addr tier.Address) (*big.Int, error) {
	return t.getAmount(accountKey(addr))
}

// AddBalance credits the given amount to an account.
func (t *Token) AddBalance(addr tier.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	bal, err := t.getAmount(accountKey(addr))
	if err != nil {
		return err
	}
	t.setAmount(accountKey(addr), bal.Add(bal, amount))
	return nil
}

// SubBalance debits the given amount from an account.
// It returns false without mutating anything if the balance is insufficient.
func (t *Token) SubBalance(addr tier.Address, amount *big.Int) (bool, error) {
	bal, err := t.getAmount(accountKey(addr))
	if err != nil {
		return false, err
	}
	if bal.Cmp(amount) < 0 {
		return false, nil
	}
	if amount.Sign() != 0 {
		t.setAmount(accountKey(addr), bal.Sub(bal, amount))
	}
	return true, nil
}

// Transfer moves amount from one account to another.
// It fails with ErrInsufficientBalance when the sender cannot cover the amount.
func (t *Token) Transfer(from, to tier.Address, amount *big.Int) error {
	ok, err := t.SubBalance(from, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientBalance
	}
	return t.AddBalance(to, amount)
}
