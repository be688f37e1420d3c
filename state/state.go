// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tierlock/tierlock/kv"
	"github.com/tierlock/tierlock/stackedmap"
	"github.com/tierlock/tierlock/tier"
)

// storageBucket prefixes all storage keys in the underlying kv store.
const storageBucket = "s"

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

type storageKey struct {
	addr tier.Address
	key  tier.Bytes32
}

// State manages the ledger world state.
// All mutations are journaled and become persistent only on Commit;
// checkpoints allow reverting a partially applied operation.
type State struct {
	db kv.GetPutter
	sm *stackedmap.StackedMap
}

// New create state object.
func New(db kv.GetPutter) *State {
	state := State{db: db}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})
	// base level holds changes pending commit
	state.sm.Push()
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		data, err := s.db.Get(dbKey(k))
		if err != nil {
			if s.db.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(data), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func dbKey(k storageKey) []byte {
	b := make([]byte, 0, len(storageBucket)+tier.AddressLength+32)
	b = append(b, storageBucket...)
	b = append(b, k.addr.Bytes()...)
	return append(b, k.key.Bytes()...)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr tier.Address, key tier.Bytes32) (tier.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return tier.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return tier.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return tier.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return tier.Blake2b(raw), nil
	}
	return tier.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr tier.Address, key, value tier.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr tier.Address, key tier.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr tier.Address, key tier.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr tier.Address, key tier.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr tier.Address, key tier.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit flushes journaled changes into the underlying kv store.
// The journal is squashed so that only the latest value per slot is written.
func (s *State) Commit() error {
	order := make([]storageKey, 0)
	latest := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(key, value any) bool {
		k := key.(storageKey)
		if _, ok := latest[k]; !ok {
			order = append(order, k)
		}
		latest[k] = value.(rlp.RawValue)
		return true
	})

	batch := s.db.NewBatch()
	for _, k := range order {
		raw := latest[k]
		if len(raw) == 0 {
			if err := batch.Delete(dbKey(k)); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := batch.Put(dbKey(k), raw); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	// start over with a fresh journal
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.cacheGetter(key)
	})
	s.sm.Push()
	return nil
}
