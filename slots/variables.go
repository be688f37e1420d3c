// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"

	"github.com/tierlock/tierlock/tier"
)

// Uint64 is a wrapper for storage and retrieval of an uint64 scalar.
type Uint64 struct {
	inner *Uint256
}

func NewUint64(context *Context, slot tier.Bytes32) *Uint64 {
	return &Uint64{inner: NewUint256(context, slot)}
}

func (u *Uint64) Get() (uint64, error) {
	v, err := u.inner.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.inner.Set(new(big.Int).SetUint64(value))
}

// AddressVar is a wrapper for storage and retrieval of an address.
type AddressVar struct {
	context *Context
	pos     tier.Bytes32
}

func NewAddressVar(context *Context, slot tier.Bytes32) *AddressVar {
	return &AddressVar{context: context, pos: slot}
}

func (a *AddressVar) Get() (tier.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return tier.Address{}, err
	}
	return tier.BytesToAddress(storage.Bytes()), nil
}

func (a *AddressVar) Set(addr tier.Address) {
	a.context.state.SetStorage(a.context.address, a.pos, tier.BytesToBytes32(addr.Bytes()))
}

// Bool is a wrapper for storage and retrieval of a boolean flag.
type Bool struct {
	inner *Uint256
}

func NewBool(context *Context, slot tier.Bytes32) *Bool {
	return &Bool{inner: NewUint256(context, slot)}
}

func (b *Bool) Get() (bool, error) {
	v, err := b.inner.Get()
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

func (b *Bool) Set(value bool) {
	if value {
		b.inner.Set(big.NewInt(1))
	} else {
		b.inner.Set(big.NewInt(0))
	}
}
