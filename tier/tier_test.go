// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tier

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	// the prefix is optional
	addr, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("0x7567d83b")
	assert.Error(t, err)
	_, err = ParseAddress("zx7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
	_, err = ParseAddress("0xg567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	original := `"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"`

	var addr Address
	require.NoError(t, json.Unmarshal([]byte(original), &addr))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte{1}).IsZero())
}

func TestParseBytes32(t *testing.T) {
	b32, err := ParseBytes32("0x00000000000000000000000000000000000000000000000000006d6173746572")
	require.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000006d6173746572", b32.String())

	_, err = ParseBytes32("0xdeadbeef")
	assert.Error(t, err)
}

func TestBytes32JSON(t *testing.T) {
	original := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b32 Bytes32
	require.NoError(t, json.Unmarshal([]byte(original), &b32))

	data, err := json.Marshal(&b32)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestBytesToBytes32(t *testing.T) {
	// short input is left padded
	b32 := BytesToBytes32([]byte{1})
	assert.Equal(t, byte(1), b32[31])
	assert.Equal(t, byte(0), b32[0])

	// long input is cropped from the left
	long := make([]byte, 40)
	long[39] = 7
	assert.Equal(t, byte(7), BytesToBytes32(long)[31])
}

func TestBlake2b(t *testing.T) {
	data := make([]byte, 64)
	_, err := rand.Read(data)
	require.NoError(t, err)

	assert.Equal(t, Bytes32(blake2b.Sum256(data)), Blake2b(data))

	// multi-part input hashes like the concatenation
	assert.Equal(t, Blake2b(data), Blake2b(data[:10], data[10:]))
}

func TestWholeTokens(t *testing.T) {
	assert.Equal(t, big.NewInt(1e18), WholeTokens(1))
	assert.Equal(t, MinDeposit, WholeTokens(1000))
	assert.Equal(t, 0, WholeTokens(0).Sign())
}
