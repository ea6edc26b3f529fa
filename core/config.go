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

package core

import (
	gomath "math"

	"github.com/ethereum/go-ethereum/common/math"
)

// RentExemptRentEpoch is the rent epoch assigned to rent-exempt accounts when
// they are loaded, taking them out of rent collection for good.
const RentExemptRentEpoch uint64 = gomath.MaxUint64

// accountStorageOverhead is the number of bytes of ledger bookkeeping charged
// to every account on top of its data payload.
const accountStorageOverhead = 128

// RentConfig holds the rent parameters deciding rent exemption.
type RentConfig struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  uint64 // years of rent an exempt account must hold
}

// MinimumBalance returns the balance an account with dataLen bytes of data
// needs in order to be rent exempt.
// The result saturates at math.MaxUint64.
func (r *RentConfig) MinimumBalance(dataLen int) uint64 {
	perYear, overflow := math.SafeMul(accountStorageOverhead+uint64(dataLen), r.LamportsPerByteYear)
	if overflow {
		return gomath.MaxUint64
	}
	balance, overflow := math.SafeMul(perYear, r.ExemptionThreshold)
	if overflow {
		return gomath.MaxUint64
	}
	return balance
}

// IsExempt reports whether an account holding lamports with dataLen bytes of
// data is rent exempt.
func (r *RentConfig) IsExempt(lamports uint64, dataLen int) bool {
	return lamports >= r.MinimumBalance(dataLen)
}

// Config are the configuration options of the transaction processor.
type Config struct {
	Rent RentConfig
}

// DefaultConfig contains the default processor settings.
var DefaultConfig = Config{
	Rent: RentConfig{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2,
	},
}
