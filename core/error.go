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

import "errors"

var (
	// ErrAccountNotFound is returned if a transaction references an account
	// that is not stored in the ledger.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFundsForFee is returned if the fee payer cannot cover the
	// transaction fee.
	ErrInsufficientFundsForFee = errors.New("insufficient funds for fee")

	// ErrInvalidNonceAccount is returned if the durable nonce account is not a
	// decodable, initialized, system owned nonce account.
	ErrInvalidNonceAccount = errors.New("invalid nonce account")

	// ErrNonceMismatch is returned if the transaction's recent blockhash does
	// not match the durable nonce stored in its nonce account.
	ErrNonceMismatch = errors.New("durable nonce mismatch")

	// ErrNonceAlreadyAdvanced is returned if the nonce account already holds
	// the durable nonce of the current block, so it was used in this block.
	ErrNonceAlreadyAdvanced = errors.New("nonce already advanced in this block")
)
