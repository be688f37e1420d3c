// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tierlock/tierlock/lvldb"
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
	"github.com/tierlock/tierlock/token"
)

var (
	engineAddr   = tier.BytesToAddress([]byte("engine"))
	tokenAddr    = tier.BytesToAddress([]byte("token"))
	owner        = tier.BytesToAddress([]byte("owner"))
	depositor    = tier.BytesToAddress([]byte("depositor"))
	feeRecipient = tier.BytesToAddress([]byte("fee-recipient"))
	userA        = tier.BytesToAddress([]byte("user-a"))
	userB        = tier.BytesToAddress([]byte("user-b"))
	stranger     = tier.BytesToAddress([]byte("stranger"))
)

const (
	createTime = uint64(1_700_000_000)
	earlyTime  = createTime + 1
	maturity   = createTime + tier.InitialUnlockDuration
)

// tenthTokens converts tenths of a whole token into the smallest unit.
func tenthTokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e17))
}

// centiTokens converts hundredths of a whole token into the smallest unit.
func centiTokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e16))
}

func newTestEngine(t *testing.T) (*Staking, *token.Token) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	st := state.New(db)
	tok := token.New(tokenAddr, st)
	require.NoError(t, tok.InitializeSupply(depositor, tier.WholeTokens(1_000_000)))
	require.NoError(t, st.Commit())

	eng := New(engineAddr, st, tok)
	require.NoError(t, eng.Initialize(owner, depositor, feeRecipient))
	return eng, tok
}

func lockFor(t *testing.T, eng *Staking, beneficiary tier.Address, wholeTokens int64) (tier.Bytes32, uint64) {
	id, index, err := eng.Lock(depositor, beneficiary, tier.WholeTokens(wholeTokens), createTime)
	require.NoError(t, err)
	require.False(t, id.IsZero())
	return id, index
}

func balanceOf(t *testing.T, tok *token.Token, addr tier.Address) *big.Int {
	balance, err := tok.Balance(addr)
	require.NoError(t, err)
	return balance
}
