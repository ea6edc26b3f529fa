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

package types

import (
	"bytes"

	"github.com/solgo/go-svm/common"
)

// Account is the ledger representation of an account: its balance, the
// program owning it, an opaque data payload and the rent bookkeeping epoch.
type Account struct {
	Lamports   uint64
	Owner      common.Pubkey
	Data       []byte
	Executable bool
	RentEpoch  uint64 // bookkeeping counter, not wall-clock time
}

// NewAccount creates an account with a zero-filled data payload of the given
// size.
func NewAccount(lamports uint64, space int, owner common.Pubkey) *Account {
	return &Account{
		Lamports: lamports,
		Owner:    owner,
		Data:     make([]byte, space),
	}
}

// Copy returns a deep-copied account. The data payload is never shared with
// the receiver.
func (a *Account) Copy() *Account {
	if a == nil {
		return nil
	}
	cpy := *a
	if a.Data != nil {
		cpy.Data = bytes.Clone(a.Data)
	}
	return &cpy
}

// SetDataFromSlice replaces the data payload with a copy of data, reusing the
// existing backing array when it is large enough.
func (a *Account) SetDataFromSlice(data []byte) {
	a.Data = append(a.Data[:0], data...)
}

// DataLen returns the length of the data payload.
func (a *Account) DataLen() int {
	return len(a.Data)
}

// Equal reports whether two accounts carry identical field values. A nil and
// an empty data payload compare equal.
func (a *Account) Equal(b *Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Lamports == b.Lamports &&
		a.Owner == b.Owner &&
		a.Executable == b.Executable &&
		a.RentEpoch == b.RentEpoch &&
		bytes.Equal(a.Data, b.Data)
}

// TransactionAccount pairs an account with the address it was loaded from.
type TransactionAccount struct {
	Address common.Pubkey
	Account *Account
}

// Copy returns a deep copy of the pair.
func (ta TransactionAccount) Copy() TransactionAccount {
	return TransactionAccount{Address: ta.Address, Account: ta.Account.Copy()}
}
