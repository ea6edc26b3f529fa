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

package nonce

import (
	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core/types"
)

// Info holds a nonce account loaded for a transaction. Once advanced, its
// account carries the durable nonce that must survive a failed execution.
type Info struct {
	Address common.Pubkey
	Account *types.Account
}

// NewInfo creates a nonce info holding a private copy of account.
func NewInfo(address common.Pubkey, account *types.Account) *Info {
	return &Info{Address: address, Account: account.Copy()}
}

// State decodes the nonce state held by the account.
func (n *Info) State() (State, error) {
	return DecodeState(n.Account.Data)
}

// TryAdvance replaces the stored durable nonce and fee rate, upgrading the
// state to the current version. The authority is preserved.
func (n *Info) TryAdvance(durableNonce common.Hash, lamportsPerSignature uint64) error {
	state, err := n.State()
	if err != nil {
		return err
	}
	if !state.Initialized() {
		return ErrUninitialized
	}
	next := NewInitialized(state.Data.Authority, durableNonce, lamportsPerSignature)
	n.Account.SetDataFromSlice(next.Encode())
	return nil
}
