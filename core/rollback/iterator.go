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

package rollback

import "github.com/solgo/go-svm/core/types"

// Iterator walks the accounts of a rollback snapshot. It holds at most two
// pending slots and is meant to live on the stack of its caller.
//
//	it := accounts.Iter()
//	for it.Next() {
//		acct := it.Account()
//		...
//	}
type Iterator struct {
	feePayer *types.TransactionAccount
	nonce    *types.TransactionAccount
	cur      *types.TransactionAccount
}

// Next advances the iterator and reports whether an account is available.
func (it *Iterator) Next() bool {
	switch {
	case it.feePayer != nil:
		it.cur, it.feePayer = it.feePayer, nil
	case it.nonce != nil:
		it.cur, it.nonce = it.nonce, nil
	default:
		it.cur = nil
		return false
	}
	return true
}

// Account returns the current account, or nil before the first call to Next
// and after iteration ends. The returned entry belongs to the snapshot and
// must not be modified.
func (it *Iterator) Account() *types.TransactionAccount {
	return it.cur
}
