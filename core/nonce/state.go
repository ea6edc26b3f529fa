// Copyright 2024 The go-svm Authors
// This file is part of the go-svm library.
//
// The go-svm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-svm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-svm library. If not, see <http://www.gnu.org/licenses/>.

// Package nonce implements the durable nonce account state and the advanced
// nonce info handed to transaction processing.
package nonce

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core/types"
)

// StateSize is the serialized size of a nonce account's data payload.
const StateSize = 4 + 4 + common.PubkeyLength + common.HashLength + 8

var durableNoncePrefix = []byte("DURABLE_NONCE")

// SystemProgram is the owner of every nonce account.
var SystemProgram = common.MustBase58ToPubkey("11111111111111111111111111111111")

var (
	// ErrInvalidAccountData is returned when a nonce account's payload cannot
	// be decoded.
	ErrInvalidAccountData = errors.New("invalid nonce account data")

	// ErrUninitialized is returned when advancing a nonce account that holds
	// no durable nonce.
	ErrUninitialized = errors.New("nonce account is uninitialized")
)

// Version tags the layout generation of the nonce state.
type Version uint32

const (
	Legacy Version = iota
	Current
)

// State tags.
const (
	stateUninitialized uint32 = iota
	stateInitialized
)

// Data is the payload of an initialized nonce account.
type Data struct {
	Authority            common.Pubkey
	DurableNonce         common.Hash
	LamportsPerSignature uint64
}

// State is the content of a nonce account. A nil Data means uninitialized.
type State struct {
	Version Version
	Data    *Data
}

// NewInitialized creates a current-version initialized nonce state.
func NewInitialized(authority common.Pubkey, durableNonce common.Hash, lamportsPerSignature uint64) State {
	return State{
		Version: Current,
		Data: &Data{
			Authority:            authority,
			DurableNonce:         durableNonce,
			LamportsPerSignature: lamportsPerSignature,
		},
	}
}

// Initialized reports whether the state holds a durable nonce.
func (s State) Initialized() bool { return s.Data != nil }

// Encode serializes the state into a StateSize byte payload.
func (s State) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(StateSize)

	// Writes into a bytes.Buffer cannot fail.
	enc := bin.NewBinEncoder(buf)
	enc.WriteUint32(uint32(s.Version), bin.LE)
	if s.Data == nil {
		enc.WriteUint32(stateUninitialized, bin.LE)
		enc.WriteBytes(make([]byte, StateSize-8), false)
		return buf.Bytes()
	}
	enc.WriteUint32(stateInitialized, bin.LE)
	enc.WriteBytes(s.Data.Authority[:], false)
	enc.WriteBytes(s.Data.DurableNonce[:], false)
	enc.WriteUint64(s.Data.LamportsPerSignature, bin.LE)
	return buf.Bytes()
}

// DecodeState parses a nonce account payload.
func DecodeState(data []byte) (State, error) {
	dec := bin.NewBinDecoder(data)
	version, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return State{}, fmt.Errorf("%w: version: %v", ErrInvalidAccountData, err)
	}
	var s State
	switch v := Version(version); v {
	case Legacy, Current:
		s.Version = v
	default:
		return State{}, fmt.Errorf("%w: unknown version %d", ErrInvalidAccountData, v)
	}
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return State{}, fmt.Errorf("%w: state: %v", ErrInvalidAccountData, err)
	}
	switch tag {
	case stateUninitialized:
		return s, nil
	case stateInitialized:
		if len(data) < StateSize {
			return State{}, fmt.Errorf("%w: short initialized payload of %d bytes", ErrInvalidAccountData, len(data))
		}
		authority, err := dec.ReadNBytes(common.PubkeyLength)
		if err != nil {
			return State{}, fmt.Errorf("%w: authority: %v", ErrInvalidAccountData, err)
		}
		durable, err := dec.ReadNBytes(common.HashLength)
		if err != nil {
			return State{}, fmt.Errorf("%w: durable nonce: %v", ErrInvalidAccountData, err)
		}
		lps, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return State{}, fmt.Errorf("%w: lamports per signature: %v", ErrInvalidAccountData, err)
		}
		s.Data = &Data{
			Authority:            common.BytesToPubkey(authority),
			DurableNonce:         common.BytesToHash(durable),
			LamportsPerSignature: lps,
		}
		return s, nil
	default:
		return State{}, fmt.Errorf("%w: unknown state %d", ErrInvalidAccountData, tag)
	}
}

// DurableNonceFromBlockhash derives the durable nonce value stored after an
// advance at the given blockhash.
func DurableNonceFromBlockhash(blockhash common.Hash) common.Hash {
	h := sha256.New()
	h.Write(durableNoncePrefix)
	h.Write(blockhash[:])
	return common.BytesToHash(h.Sum(nil))
}

// NewAccount creates a system-owned nonce account holding the given state.
func NewAccount(lamports uint64, state State) *types.Account {
	return &types.Account{
		Lamports: lamports,
		Owner:    SystemProgram,
		Data:     state.Encode(),
	}
}
