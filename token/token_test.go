// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlock/tierlock/lvldb"
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
)

var (
	tokenAddr = tier.BytesToAddress([]byte("token"))
	holder    = tier.BytesToAddress([]byte("holder"))
	receiver  = tier.BytesToAddress([]byte("receiver"))
)

func newToken(t *testing.T) *Token {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return New(tokenAddr, state.New(db))
}

func TestInitializeSupply(t *testing.T) {
	tok := newToken(t)

	require.NoError(t, tok.InitializeSupply(holder, tier.WholeTokens(5000)))

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, tier.WholeTokens(5000), supply)

	balance, err := tok.Balance(holder)
	require.NoError(t, err)
	assert.Equal(t, tier.WholeTokens(5000), balance)

	assert.Error(t, tok.InitializeSupply(holder, tier.WholeTokens(1)))
}

func TestBalance_Unknown(t *testing.T) {
	tok := newToken(t)

	balance, err := tok.Balance(receiver)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Sign())
}

func TestAddSubBalance(t *testing.T) {
	tok := newToken(t)

	require.NoError(t, tok.AddBalance(holder, big.NewInt(100)))

	ok, err := tok.SubBalance(holder, big.NewInt(40))
	require.NoError(t, err)
	assert.True(t, ok)

	balance, err := tok.Balance(holder)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), balance)

	// over-debit is refused, balance untouched
	ok, err = tok.SubBalance(holder, big.NewInt(61))
	require.NoError(t, err)
	assert.False(t, ok)

	balance, err = tok.Balance(holder)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), balance)
}

func TestTransfer(t *testing.T) {
	tok := newToken(t)
	require.NoError(t, tok.InitializeSupply(holder, tier.WholeTokens(100)))

	require.NoError(t, tok.Transfer(holder, receiver, tier.WholeTokens(30)))

	from, err := tok.Balance(holder)
	require.NoError(t, err)
	to, err := tok.Balance(receiver)
	require.NoError(t, err)
	assert.Equal(t, tier.WholeTokens(70), from)
	assert.Equal(t, tier.WholeTokens(30), to)

	err = tok.Transfer(receiver, holder, tier.WholeTokens(31))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}
