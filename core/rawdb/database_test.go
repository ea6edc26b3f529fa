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
	"testing"

	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core/types"
)

func TestOpenPersistent(t *testing.T) {
	for _, engine := range []string{DBLeveldb, DBPebble} {
		t.Run(engine, func(t *testing.T) {
			dir := t.TempDir()
			address := common.NewUniquePubkey()
			account := &types.Account{Lamports: 7, Data: []byte{1, 2, 3}, RentEpoch: 4}

			db, err := Open(OpenOptions{Type: engine, Directory: dir})
			if err != nil {
				t.Fatalf("failed to open %s: %v", engine, err)
			}
			WriteAccount(db, address, account)
			if err := db.Close(); err != nil {
				t.Fatalf("failed to close %s: %v", engine, err)
			}

			reopen := NewLevelDBDatabase
			if engine == DBPebble {
				reopen = NewPebbleDBDatabase
			}
			db, err = reopen(dir, 16, 16, "", false)
			if err != nil {
				t.Fatalf("failed to reopen %s: %v", engine, err)
			}
			defer db.Close()
			if have := ReadAccount(db, address); !have.Equal(account) {
				t.Fatalf("account lost across reopen: have %+v, want %+v", have, account)
			}
			if have := ReadAccount(db, common.NewUniquePubkey()); have != nil {
				t.Fatalf("missing account read back as %+v", have)
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(OpenOptions{Type: "rocksdb", Directory: t.TempDir()}); err == nil {
		t.Errorf("expected error for unknown engine")
	}
	if _, err := Open(OpenOptions{Type: DBLeveldb}); err == nil {
		t.Errorf("expected error for missing directory")
	}
	if _, err := NewPebbleDBDatabase("", 16, 16, "", false); err == nil {
		t.Errorf("expected error for missing pebble directory")
	}
	db, err := Open(OpenOptions{Type: DBMemory})
	if err != nil {
		t.Fatalf("failed to open memory database: %v", err)
	}
	db.Close()
}
