// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierlock/tierlock/lvldb"
	"github.com/tierlock/tierlock/staking"
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
	"github.com/tierlock/tierlock/token"
)

func newServer(t *testing.T, initialize bool) *httptest.Server {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	st := state.New(db)
	depositor := tier.BytesToAddress([]byte("depositor"))
	tok := token.New(tier.BytesToAddress([]byte("token")), st)
	require.NoError(t, tok.InitializeSupply(depositor, tier.WholeTokens(1_000_000)))
	require.NoError(t, st.Commit())

	engine := staking.New(tier.BytesToAddress([]byte("engine")), st, tok)
	if initialize {
		require.NoError(t, engine.Initialize(
			tier.BytesToAddress([]byte("owner")),
			depositor,
			tier.BytesToAddress([]byte("fee-recipient")),
		))
	}

	router := mux.NewRouter()
	New(engine).Mount(router, "/health")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func getHealth(t *testing.T, srv *httptest.Server) (Status, int) {
	res, err := http.Get(srv.URL + "/health") //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "application/json; charset=utf-8", res.Header.Get("Content-Type"))

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var status Status
	require.NoError(t, json.Unmarshal(body, &status))
	return status, res.StatusCode
}

func TestHealth_Initialized(t *testing.T) {
	srv := newServer(t, true)

	status, code := getHealth(t, srv)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.True(t, status.LedgerInitialized)
}

func TestHealth_Uninitialized(t *testing.T) {
	srv := newServer(t, false)

	status, code := getHealth(t, srv)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, status.Healthy)
	assert.False(t, status.LedgerInitialized)
}
