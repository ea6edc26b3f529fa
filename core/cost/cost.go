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

// Package cost prices the account data footprint of processed transactions.
package cost

import (
	gomath "math"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/solgo/go-svm/core/rollback"
)

const (
	// AccountDataPageSize is the granularity at which loaded account data
	// is priced.
	AccountDataPageSize = 32 * 1024

	// HeapCost is the compute unit cost of a single page of account data.
	HeapCost = 8
)

// LoadedAccountsDataSizeCost returns the compute units charged for loading
// size bytes of account data, rounded up to whole pages.
func LoadedAccountsDataSizeCost(size uint64) uint64 {
	pages := size / AccountDataPageSize
	if size%AccountDataPageSize != 0 {
		pages++
	}
	units, overflow := math.SafeMul(pages, HeapCost)
	if overflow {
		return gomath.MaxUint64
	}
	return units
}

// RollbackCost returns the compute units charged for the accounts a failed
// transaction commits.
func RollbackCost(accounts rollback.Accounts) uint64 {
	return LoadedAccountsDataSizeCost(accounts.DataSize())
}
