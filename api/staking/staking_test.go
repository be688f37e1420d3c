// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlock/tierlock/lvldb"
	"github.com/tierlock/tierlock/staking"
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
	"github.com/tierlock/tierlock/token"
)

var (
	owner        = tier.BytesToAddress([]byte("owner"))
	depositor    = tier.BytesToAddress([]byte("depositor"))
	feeRecipient = tier.BytesToAddress([]byte("fee-recipient"))
	user         = tier.BytesToAddress([]byte("user"))

	createTime = uint64(1_700_000_000)
)

func newServer(t *testing.T) (*httptest.Server, *staking.Staking) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	st := state.New(db)
	tok := token.New(tier.BytesToAddress([]byte("token")), st)
	require.NoError(t, tok.InitializeSupply(depositor, tier.WholeTokens(1_000_000)))
	require.NoError(t, st.Commit())

	engine := staking.New(tier.BytesToAddress([]byte("engine")), st, tok)
	require.NoError(t, engine.Initialize(owner, depositor, feeRecipient))

	router := mux.NewRouter()
	New(engine).Mount(router, "/staking")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, engine
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func amount(wholeTokens int64) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(tier.WholeTokens(wholeTokens))
}

func TestGetConfig(t *testing.T) {
	srv, _ := newServer(t)

	body, status := httpGet(t, srv.URL+"/staking/config")
	require.Equal(t, http.StatusOK, status)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, owner.String(), cfg["owner"])
	assert.Equal(t, depositor.String(), cfg["depositor"])
	assert.Equal(t, float64(12), cfg["multiplier"])
	assert.Equal(t, float64(120), cfg["emergencyFeeRate"])
	assert.Equal(t, false, cfg["earlyWithdrawalEnabled"])
}

func TestCreateLock(t *testing.T) {
	srv, engine := newServer(t)

	body, status := httpPost(t, srv.URL+"/staking/locks", &LockPayload{
		Caller:      depositor,
		Beneficiary: user,
		Amount:      amount(2000),
		Timestamp:   createTime,
	})
	require.Equal(t, http.StatusOK, status)

	var receipt LockReceipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, uint64(0), receipt.Index)
	assert.False(t, receipt.LockID.IsZero())

	total, err := engine.GlobalLockedTotal()
	require.NoError(t, err)
	assert.Equal(t, tier.WholeTokens(2000), total)
}

func TestCreateLock_Rejections(t *testing.T) {
	srv, _ := newServer(t)

	// policy rejection maps to 403 with the taxonomy name
	body, status := httpPost(t, srv.URL+"/staking/locks", &LockPayload{
		Caller:      user,
		Beneficiary: user,
		Amount:      amount(2000),
		Timestamp:   createTime,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "Unauthorized")

	body, status = httpPost(t, srv.URL+"/staking/locks", &LockPayload{
		Caller:      depositor,
		Beneficiary: user,
		Amount:      amount(999),
		Timestamp:   createTime,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "BelowMinimum")

	// malformed body maps to 400
	_, status = httpPost(t, srv.URL+"/staking/locks", map[string]any{"bogus": 1})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetPoolAndAccount(t *testing.T) {
	srv, engine := newServer(t)

	_, _, err := engine.Lock(depositor, user, tier.WholeTokens(2000), createTime)
	require.NoError(t, err)

	body, status := httpGet(t, srv.URL+"/staking/pool/"+user.String())
	require.Equal(t, http.StatusOK, status)

	var pool Pool
	require.NoError(t, json.Unmarshal(body, &pool))
	assert.Equal(t, tier.WholeTokens(24_000), (*big.Int)(pool.UserWeighted))
	assert.Equal(t, tier.WholeTokens(24_000), (*big.Int)(pool.GlobalWeighted))

	body, status = httpGet(t, srv.URL+"/staking/accounts/"+user.String())
	require.Equal(t, http.StatusOK, status)

	var account Account
	require.NoError(t, json.Unmarshal(body, &account))
	assert.Equal(t, tier.WholeTokens(2000), (*big.Int)(account.LockedTotal))
	assert.Equal(t, uint64(1), account.LockCount)
}

func TestGetPool_BadAddress(t *testing.T) {
	srv, _ := newServer(t)

	_, status := httpGet(t, srv.URL+"/staking/pool/not-an-address")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetLock(t *testing.T) {
	srv, engine := newServer(t)

	id, index, err := engine.Lock(depositor, user, tier.WholeTokens(2000), createTime)
	require.NoError(t, err)

	body, status := httpGet(t, srv.URL+"/staking/locks/"+id.String())
	require.Equal(t, http.StatusOK, status)

	var lock Lock
	require.NoError(t, json.Unmarshal(body, &lock))
	assert.Equal(t, user, lock.Owner)
	assert.Equal(t, tier.WholeTokens(2000), (*big.Int)(lock.RemainingBalance))
	assert.Equal(t, createTime, lock.CreatedAt)

	_, status = httpGet(t, fmt.Sprintf("%s/staking/accounts/%s/locks/%d", srv.URL, user.String(), index))
	assert.Equal(t, http.StatusOK, status)

	// unknown ids are 404
	_, status = httpGet(t, srv.URL+"/staking/locks/"+tier.BytesToBytes32([]byte("nope")).String())
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWithdraw(t *testing.T) {
	srv, engine := newServer(t)

	id, index, err := engine.Lock(depositor, user, tier.WholeTokens(2000), createTime)
	require.NoError(t, err)
	require.NoError(t, engine.ChangeEarlyWithdrawal(owner, true))

	body, status := httpPost(t, srv.URL+"/staking/withdrawals", &WithdrawPayload{
		Caller:    user,
		LockID:    id,
		Index:     index,
		Amount:    amount(1000),
		Timestamp: createTime + 1,
	})
	require.Equal(t, http.StatusOK, status)

	var receipt WithdrawReceipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, tier.WholeTokens(988), (*big.Int)(receipt.Net))
	assert.Equal(t, tier.WholeTokens(12), (*big.Int)(receipt.Fee))
}

func TestWithdraw_EarlyDisabled(t *testing.T) {
	srv, engine := newServer(t)

	id, index, err := engine.Lock(depositor, user, tier.WholeTokens(2000), createTime)
	require.NoError(t, err)

	body, status := httpPost(t, srv.URL+"/staking/withdrawals", &WithdrawPayload{
		Caller:    user,
		LockID:    id,
		Index:     index,
		Amount:    amount(100),
		Timestamp: createTime + 1,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "EarlyWithdrawalDisabled")
}

func TestConfigMutators(t *testing.T) {
	srv, engine := newServer(t)

	_, status := httpPost(t, srv.URL+"/staking/config/fee", &ValuePayload{Caller: owner, Value: 250})
	require.Equal(t, http.StatusOK, status)

	_, status = httpPost(t, srv.URL+"/staking/config/early-withdrawal", &FlagPayload{Caller: owner, Enabled: true})
	require.Equal(t, http.StatusOK, status)

	_, status = httpPost(t, srv.URL+"/staking/config/depositor", &AddressPayload{Caller: owner, Address: user})
	require.Equal(t, http.StatusOK, status)

	cfg, err := engine.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, uint64(250), cfg.EmergencyFeeRate)
	assert.True(t, cfg.EarlyWithdrawalEnabled)
	assert.Equal(t, user, cfg.Depositor)

	// non-owner rejected
	body, status := httpPost(t, srv.URL+"/staking/config/fee", &ValuePayload{Caller: user, Value: 10})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "Unauthorized")
}
