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

package rawdb

import (
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core/rollback"
	"github.com/solgo/go-svm/core/types"
)

var rollbackWrittenMeter = metrics.NewRegisteredMeter("rawdb/rollback/accounts", nil)

// ReadAccountRLP retrieves the RLP encoded account stored under address.
func ReadAccountRLP(db ethdb.KeyValueReader, address common.Pubkey) rlp.RawValue {
	key := accountKey(address)
	data, err := db.Get(key)
	if err != nil && isNotFoundErr(db, key) {
		return nil
	}
	if err != nil {
		log.Crit("Failed to read account", "address", address, "err", err)
	}
	return data
}

// isNotFoundErr reports whether a failed read of key failed because the key
// is absent. The engines' not-found errors are not shared, so ask Has.
func isNotFoundErr(db ethdb.KeyValueReader, key []byte) bool {
	has, err := db.Has(key)
	return err == nil && !has
}

// ReadAccount retrieves the account stored under address, or nil if the
// account is unknown.
func ReadAccount(db ethdb.KeyValueReader, address common.Pubkey) *types.Account {
	data := ReadAccountRLP(db, address)
	if len(data) == 0 {
		return nil
	}
	account := new(types.Account)
	if err := rlp.DecodeBytes(data, account); err != nil {
		log.Error("Invalid account RLP", "address", address, "err", err)
		return nil
	}
	return account
}

// HasAccount checks whether an account is stored under address.
func HasAccount(db ethdb.KeyValueReader, address common.Pubkey) bool {
	if has, err := db.Has(accountKey(address)); !has || err != nil {
		return false
	}
	return true
}

// WriteAccount stores an account under address.
func WriteAccount(db ethdb.KeyValueWriter, address common.Pubkey, account *types.Account) {
	data, err := rlp.EncodeToBytes(account)
	if err != nil {
		log.Crit("Failed to RLP encode account", "err", err)
	}
	if err := db.Put(accountKey(address), data); err != nil {
		log.Crit("Failed to store account", "err", err)
	}
}

// DeleteAccount removes the account stored under address.
func DeleteAccount(db ethdb.KeyValueWriter, address common.Pubkey) {
	if err := db.Delete(accountKey(address)); err != nil {
		log.Crit("Failed to delete account", "err", err)
	}
}

// WriteRollbackAccounts stores every account tracked by a rollback snapshot,
// replacing whatever a failed transaction left behind for them.
func WriteRollbackAccounts(db ethdb.KeyValueWriter, accounts rollback.Accounts) {
	it := accounts.Iter()
	for it.Next() {
		entry := it.Account()
		WriteAccount(db, entry.Address, entry.Account)
	}
	rollbackWrittenMeter.Mark(int64(accounts.Count()))
}
