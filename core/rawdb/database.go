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
	"fmt"

	gethrawdb "github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
)

// Supported database engines.
const (
	DBMemory  = "memory"
	DBLeveldb = "leveldb"
	DBPebble  = "pebble"
)

// OpenOptions contains the options to apply when opening an accounts store.
type OpenOptions struct {
	Type      string // "memory", "leveldb" or "pebble"
	Directory string // the datadir, ignored by the memory engine
	Namespace string // the namespace for database relevant metrics
	Cache     int    // the capacity(in megabytes) of the data caching
	Handles   int    // number of files to be open simultaneously
	ReadOnly  bool
}

// NewMemoryDatabase creates an ephemeral in-memory accounts store.
func NewMemoryDatabase() ethdb.Database {
	return gethrawdb.NewMemoryDatabase()
}

// NewLevelDBDatabase creates a persistent accounts store backed by leveldb.
func NewLevelDBDatabase(file string, cache int, handles int, namespace string, readonly bool) (ethdb.Database, error) {
	return openPersistent(DBLeveldb, file, cache, handles, namespace, readonly)
}

// NewPebbleDBDatabase creates a persistent accounts store backed by pebble.
func NewPebbleDBDatabase(file string, cache int, handles int, namespace string, readonly bool) (ethdb.Database, error) {
	return openPersistent(DBPebble, file, cache, handles, namespace, readonly)
}

func openPersistent(engine string, file string, cache int, handles int, namespace string, readonly bool) (ethdb.Database, error) {
	if file == "" {
		return nil, fmt.Errorf("%s database requires a directory", engine)
	}
	log.Info("Opening accounts database", "type", engine, "dir", file, "cache", cache, "handles", handles, "readonly", readonly)
	return gethrawdb.Open(gethrawdb.OpenOptions{
		Type:      engine,
		Directory: file,
		Namespace: namespace,
		Cache:     cache,
		Handles:   handles,
		ReadOnly:  readonly,
	})
}

// Open opens an accounts store of the requested engine.
func Open(o OpenOptions) (ethdb.Database, error) {
	switch o.Type {
	case DBMemory:
		return NewMemoryDatabase(), nil
	case DBLeveldb:
		return NewLevelDBDatabase(o.Directory, o.Cache, o.Handles, o.Namespace, o.ReadOnly)
	case DBPebble:
		return NewPebbleDBDatabase(o.Directory, o.Cache, o.Handles, o.Namespace, o.ReadOnly)
	default:
		return nil, fmt.Errorf("unknown database type %q", o.Type)
	}
}
