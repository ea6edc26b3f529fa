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

// Package rollback captures the account state that must be committed when an
// executed transaction fails: the fee payer's deducted balance and, for
// durable nonce transactions, the advanced nonce.
package rollback

import (
	gomath "math"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core/nonce"
	"github.com/solgo/go-svm/core/types"
)

// Accounts is the rollback snapshot of a transaction. It is implemented by
// exactly three types: *FeePayerOnly, *SameNonceAndFeePayer and
// *SeparateNonceAndFeePayer. Snapshots are not modified after New returns.
type Accounts interface {
	// Count returns the number of accounts tracked for rollback.
	Count() int

	// Iter returns a fresh iterator over the tracked accounts, fee payer
	// first and nonce second.
	Iter() Iterator

	// DataSize returns the summed data payload length of the tracked
	// accounts, used to price the failed transaction in the cost model.
	DataSize() uint64

	rollbackAccounts()
}

// FeePayerOnly is the snapshot of a transaction that used no durable nonce.
type FeePayerOnly struct {
	FeePayer types.TransactionAccount
}

// SameNonceAndFeePayer is the snapshot of a durable nonce transaction whose
// nonce account also pays the fee. The single entry merges both roles.
type SameNonceAndFeePayer struct {
	Nonce types.TransactionAccount
}

// SeparateNonceAndFeePayer is the snapshot of a durable nonce transaction
// with distinct nonce and fee payer accounts.
type SeparateNonceAndFeePayer struct {
	Nonce    types.TransactionAccount
	FeePayer types.TransactionAccount
}

// New captures the rollback snapshot of a loaded transaction.
//
// The nonce, if any, must already hold the advanced durable nonce. The fee
// payer account is the account as it currently stands after fee deduction,
// and feePayerLoadedRentEpoch the rent epoch it had when originally loaded.
// The loaded rent epoch is ignored for nonce transactions. All inputs are
// copied; the snapshot never aliases caller memory.
func New(nonce *nonce.Info, feePayerAddress common.Pubkey, feePayerAccount *types.Account, feePayerLoadedRentEpoch uint64) Accounts {
	feePayer := feePayerAccount.Copy()
	if nonce == nil {
		// Rolled back fee payers of non-nonce transactions keep the rent
		// epoch they were loaded with. This may be changed behind a feature
		// gate so that both kinds of failed transactions update it the same.
		feePayer.RentEpoch = feePayerLoadedRentEpoch
		return &FeePayerOnly{
			FeePayer: types.TransactionAccount{Address: feePayerAddress, Account: feePayer},
		}
	}
	if nonce.Address == feePayerAddress {
		// The nonce carries the advanced durable nonce while the fee payer
		// carries the post-fee lamports and rent epoch. Keep both.
		feePayer.SetDataFromSlice(nonce.Account.Data)
		return &SameNonceAndFeePayer{
			Nonce: types.TransactionAccount{Address: feePayerAddress, Account: feePayer},
		}
	}
	return &SeparateNonceAndFeePayer{
		Nonce:    types.TransactionAccount{Address: nonce.Address, Account: nonce.Account.Copy()},
		FeePayer: types.TransactionAccount{Address: feePayerAddress, Account: feePayer},
	}
}

func (*FeePayerOnly) Count() int             { return 1 }
func (*SameNonceAndFeePayer) Count() int     { return 1 }
func (*SeparateNonceAndFeePayer) Count() int { return 2 }

func (a *FeePayerOnly) Iter() Iterator {
	return Iterator{feePayer: &a.FeePayer}
}

func (a *SameNonceAndFeePayer) Iter() Iterator {
	return Iterator{nonce: &a.Nonce}
}

func (a *SeparateNonceAndFeePayer) Iter() Iterator {
	return Iterator{feePayer: &a.FeePayer, nonce: &a.Nonce}
}

func (a *FeePayerOnly) DataSize() uint64             { return dataSize(a.Iter()) }
func (a *SameNonceAndFeePayer) DataSize() uint64     { return dataSize(a.Iter()) }
func (a *SeparateNonceAndFeePayer) DataSize() uint64 { return dataSize(a.Iter()) }

func (*FeePayerOnly) rollbackAccounts()             {}
func (*SameNonceAndFeePayer) rollbackAccounts()     {}
func (*SeparateNonceAndFeePayer) rollbackAccounts() {}

func dataSize(it Iterator) uint64 {
	var total uint64
	for it.Next() {
		total = saturatingAdd(total, uint64(it.Account().Account.DataLen()))
	}
	return total
}

func saturatingAdd(a, b uint64) uint64 {
	sum, overflow := math.SafeAdd(a, b)
	if overflow {
		return gomath.MaxUint64
	}
	return sum
}
