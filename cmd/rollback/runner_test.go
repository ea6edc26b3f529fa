// Copyright 2024 The go-svm Authors
// This file is part of go-svm.
//
// go-svm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-svm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-svm. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core"
	"github.com/solgo/go-svm/core/nonce"
	"github.com/solgo/go-svm/core/rawdb"
	"github.com/stretchr/testify/require"
)

var (
	testFeePayer  = common.NewUniquePubkey()
	testNonce     = common.NewUniquePubkey()
	testRecipient = common.NewUniquePubkey()
	testAuthority = common.NewUniquePubkey()

	oldBlockhash = common.Hash{0x0a}
	newBlockhash = common.Hash{0x0b}
)

func separateNonceFixture(fail string) *fixture {
	return &fixture{
		Alloc: map[common.Pubkey]*fixtureAccount{
			testFeePayer: {Lamports: 1_000_000, RentEpoch: 5},
			testNonce: {
				Lamports: 2_000_000,
				Nonce:    &fixtureNonce{Authority: testAuthority, Blockhash: oldBlockhash, LamportsPerSignature: 5000},
			},
		},
		Env: fixtureEnv{Blockhash: newBlockhash, LamportsPerSignature: 5000},
		Tx: fixtureTx{
			FeePayer:        testFeePayer,
			Fee:             5000,
			Nonce:           &testNonce,
			RecentBlockhash: nonce.DurableNonceFromBlockhash(oldBlockhash),
		},
		Fail: fail,
	}
}

func TestRunFixtureFailure(t *testing.T) {
	res, err := runFixture(rawdb.NewMemoryDatabase(), &core.DefaultConfig, separateNonceFixture("custom program error: 0x1"))
	require.NoError(t, err)
	require.Equal(t, "custom program error: 0x1", res.Error)
	require.Equal(t, "SeparateNonceAndFeePayer", res.Rollback)
	require.Equal(t, 2, res.Count)
	require.Equal(t, uint64(nonce.StateSize), res.DataSize)
	require.Equal(t, uint64(8), res.Cost)

	feePayer := res.State[testFeePayer]
	require.NotNil(t, feePayer)
	require.Equal(t, uint64(995_000), feePayer.Lamports)
	require.Equal(t, core.RentExemptRentEpoch, feePayer.RentEpoch)

	advanced := res.State[testNonce]
	require.NotNil(t, advanced)
	state, err := nonce.DecodeState(advanced.Data)
	require.NoError(t, err)
	require.Equal(t, nonce.DurableNonceFromBlockhash(newBlockhash), state.Data.DurableNonce)
	require.Equal(t, testAuthority, state.Data.Authority)
}

func TestRunFixtureSuccess(t *testing.T) {
	f := separateNonceFixture("")
	f.Post = map[common.Pubkey]*fixtureAccount{
		testRecipient: {Lamports: 42, Data: []byte{1, 2, 3}},
	}
	res, err := runFixture(rawdb.NewMemoryDatabase(), &core.DefaultConfig, f)
	require.NoError(t, err)
	require.Empty(t, res.Error)
	require.Equal(t, uint64(0), res.Cost)
	require.Equal(t, uint64(995_000), res.State[testFeePayer].Lamports)
	require.Equal(t, core.RentExemptRentEpoch, res.State[testFeePayer].RentEpoch)
	require.Equal(t, uint64(42), res.State[testRecipient].Lamports)
	require.Equal(t, []byte{1, 2, 3}, []byte(res.State[testRecipient].Data))
}

func TestRunFixtureLoadError(t *testing.T) {
	f := separateNonceFixture("")
	f.Tx.RecentBlockhash = common.Hash{0xff}

	db := rawdb.NewMemoryDatabase()
	_, err := runFixture(db, &core.DefaultConfig, f)
	require.ErrorIs(t, err, core.ErrNonceMismatch)
	require.Equal(t, uint64(1_000_000), rawdb.ReadAccount(db, testFeePayer).Lamports)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	blob, err := json.Marshal(separateNonceFixture("boom"))
	require.NoError(t, err)
	path := filepath.Join(dir, "fixture.json")
	require.NoError(t, os.WriteFile(path, blob, 0o644))

	var out bytes.Buffer
	app.Writer = &out
	defer func() { app.Writer = os.Stdout }()
	require.NoError(t, app.Run([]string{"rollback", "--verbosity", "0", "--db.engine", "pebble", "--datadir", filepath.Join(dir, "db"), "run", path}))

	var res runResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Equal(t, "boom", res.Error)
	require.Equal(t, "SeparateNonceAndFeePayer", res.Rollback)
	require.Equal(t, uint64(995_000), res.State[testFeePayer].Lamports)
}

func TestDumpConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Processor.Rent]\nLamportsPerByteYear = 1000\nExemptionThreshold = 3\n"), 0o644))

	var out bytes.Buffer
	app.Writer = &out
	defer func() { app.Writer = os.Stdout }()
	require.NoError(t, app.Run([]string{"rollback", "--verbosity", "0", "--config", file, "--cache", "64", "dumpconfig"}))

	var cfg rollbackConfig
	require.NoError(t, tomlSettings.NewDecoder(&out).Decode(&cfg))
	require.Equal(t, uint64(1000), cfg.Processor.Rent.LamportsPerByteYear)
	require.Equal(t, uint64(3), cfg.Processor.Rent.ExemptionThreshold)
	require.Equal(t, 64, cfg.DB.Cache)
	require.Equal(t, rawdb.DBMemory, cfg.DB.Engine)
}

func TestLoadConfigUnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("[DB]\nEngin = \"pebble\"\n"), 0o644))

	cfg := defaultConfig
	require.Error(t, loadConfig(file, &cfg))
}
