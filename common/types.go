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

// Package common contains the identifier types shared across go-svm.
package common

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/mr-tron/base58"
)

// Lengths of public keys and hashes in bytes.
const (
	PubkeyLength = 32
	HashLength   = 32
)

// Pubkey is the 32 byte address of an account.
type Pubkey [PubkeyLength]byte

// Hash is a 32 byte digest, e.g. a blockhash or a durable nonce value.
type Hash [HashLength]byte

// BytesToPubkey sets b to a pubkey. If b is larger than len(p), b will be
// cropped from the left.
func BytesToPubkey(b []byte) Pubkey {
	var p Pubkey
	p.SetBytes(b)
	return p
}

// Base58ToPubkey parses the base58 text form of a pubkey.
func Base58ToPubkey(s string) (Pubkey, error) {
	var p Pubkey
	err := p.UnmarshalText([]byte(s))
	return p, err
}

// MustBase58ToPubkey is like Base58ToPubkey but panics on malformed input.
// It is intended for well known program ids and tests.
func MustBase58ToPubkey(s string) Pubkey {
	p, err := Base58ToPubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

var uniqueCounter atomic.Uint64

// NewUniquePubkey returns a pubkey that differs from every other pubkey
// handed out by this function in the current process.
func NewUniquePubkey() Pubkey {
	var p Pubkey
	binary.BigEndian.PutUint64(p[:8], uniqueCounter.Add(1))
	return p
}

// Bytes gets the byte representation of the underlying pubkey.
func (p Pubkey) Bytes() []byte { return p[:] }

// String implements fmt.Stringer, returning the base58 form.
func (p Pubkey) String() string { return base58.Encode(p[:]) }

// TerminalString implements log.TerminalStringer, formatting a shortened
// string for log output.
func (p Pubkey) TerminalString() string {
	s := p.String()
	if len(s) <= 10 {
		return s
	}
	return s[:4] + ".." + s[len(s)-4:]
}

// SetBytes sets the pubkey to the value of b.
// If b is larger than len(p), b will be cropped from the left.
func (p *Pubkey) SetBytes(b []byte) {
	if len(b) > len(p) {
		b = b[len(b)-PubkeyLength:]
	}
	copy(p[PubkeyLength-len(b):], b)
}

// MarshalText returns the base58 representation of p.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a pubkey in base58 syntax.
func (p *Pubkey) UnmarshalText(input []byte) error {
	return decodeBase58(input, p[:], "Pubkey")
}

// BytesToHash sets b to hash. If b is larger than len(h), b will be cropped
// from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// String implements fmt.Stringer, returning the base58 form.
func (h Hash) String() string { return base58.Encode(h[:]) }

// SetBytes sets the hash to the value of b.
// If b is larger than len(h), b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// MarshalText returns the base58 representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a hash in base58 syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	return decodeBase58(input, h[:], "Hash")
}

func decodeBase58(input []byte, out []byte, typname string) error {
	dec, err := base58.Decode(string(input))
	if err != nil {
		return fmt.Errorf("invalid base58 %s %q: %w", typname, input, err)
	}
	if len(dec) != len(out) {
		return fmt.Errorf("%s has wrong length, want %d bytes, have %d", typname, len(out), len(dec))
	}
	copy(out, dec)
	return nil
}
