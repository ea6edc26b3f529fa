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
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core"
	"github.com/solgo/go-svm/core/nonce"
	"github.com/solgo/go-svm/core/rawdb"
	"github.com/solgo/go-svm/core/types"
	"github.com/urfave/cli/v2"
)

// fixtureNonce describes initialized nonce account data. When set on an
// account it replaces the account's raw data.
type fixtureNonce struct {
	Authority            common.Pubkey `json:"authority"`
	Blockhash            common.Hash   `json:"blockhash"`
	LamportsPerSignature uint64        `json:"lamportsPerSignature"`
}

type fixtureAccount struct {
	Lamports   uint64        `json:"lamports"`
	Owner      common.Pubkey `json:"owner"`
	Data       hexutil.Bytes `json:"data,omitempty"`
	Executable bool          `json:"executable,omitempty"`
	RentEpoch  uint64        `json:"rentEpoch"`
	Nonce      *fixtureNonce `json:"nonce,omitempty"`
}

type fixtureEnv struct {
	Blockhash            common.Hash `json:"blockhash"`
	LamportsPerSignature uint64      `json:"lamportsPerSignature"`
}

type fixtureTx struct {
	FeePayer        common.Pubkey  `json:"feePayer"`
	Fee             uint64         `json:"fee"`
	Nonce           *common.Pubkey `json:"nonce,omitempty"`
	RecentBlockhash common.Hash    `json:"recentBlockhash"`
}

// fixture is a single transaction run. Fail, if non-empty, is the error the
// simulated execution reports; otherwise Post holds the accounts execution
// writes on success.
type fixture struct {
	Alloc map[common.Pubkey]*fixtureAccount `json:"alloc"`
	Env   fixtureEnv                        `json:"env"`
	Tx    fixtureTx                         `json:"tx"`
	Fail  string                            `json:"fail,omitempty"`
	Post  map[common.Pubkey]*fixtureAccount `json:"post,omitempty"`
}

type runResult struct {
	Error    string                            `json:"error,omitempty"`
	Rollback string                            `json:"rollback"`
	Count    int                               `json:"count"`
	DataSize uint64                            `json:"dataSize"`
	Cost     uint64                            `json:"cost"`
	State    map[common.Pubkey]*fixtureAccount `json:"state"`
}

func (a *fixtureAccount) toAccount() *types.Account {
	acc := &types.Account{
		Lamports:   a.Lamports,
		Owner:      a.Owner,
		Data:       bytes.Clone(a.Data),
		Executable: a.Executable,
		RentEpoch:  a.RentEpoch,
	}
	if a.Nonce != nil {
		state := nonce.NewInitialized(a.Nonce.Authority, nonce.DurableNonceFromBlockhash(a.Nonce.Blockhash), a.Nonce.LamportsPerSignature)
		acc.Data = state.Encode()
	}
	return acc
}

func newFixtureAccount(acc *types.Account) *fixtureAccount {
	return &fixtureAccount{
		Lamports:   acc.Lamports,
		Owner:      acc.Owner,
		Data:       bytes.Clone(acc.Data),
		Executable: acc.Executable,
		RentEpoch:  acc.RentEpoch,
	}
}

func loadFixture(path string) (*fixture, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fixture
	if err := json.Unmarshal(blob, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// runFixture seeds db with the fixture's accounts, processes its transaction
// and returns the resulting state of every account the fixture names.
func runFixture(db ethdb.Database, config *core.Config, f *fixture) (*runResult, error) {
	batch := db.NewBatch()
	for addr, acc := range f.Alloc {
		rawdb.WriteAccount(batch, addr, acc.toAccount())
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	var (
		tx = &core.Transaction{
			FeePayer:        f.Tx.FeePayer,
			Fee:             f.Tx.Fee,
			Nonce:           f.Tx.Nonce,
			RecentBlockhash: f.Tx.RecentBlockhash,
		}
		env = &core.BlockEnv{
			Blockhash:            f.Env.Blockhash,
			LamportsPerSignature: f.Env.LamportsPerSignature,
		}
	)
	exec := func(accounts []types.TransactionAccount) ([]types.TransactionAccount, error) {
		if f.Fail != "" {
			return nil, errors.New(f.Fail)
		}
		for addr, acc := range f.Post {
			accounts = append(accounts, types.TransactionAccount{Address: addr, Account: acc.toAccount()})
		}
		return accounts, nil
	}
	res, err := core.NewProcessor(db, config).Process(tx, env, exec)
	if err != nil {
		return nil, err
	}
	out := &runResult{
		Rollback: core.RollbackKind(res.Rollback),
		Count:    res.Rollback.Count(),
		DataSize: res.Rollback.DataSize(),
		Cost:     res.Cost,
		State:    make(map[common.Pubkey]*fixtureAccount),
	}
	if res.Failed() {
		out.Error = res.Err.Error()
	}
	touched := []common.Pubkey{f.Tx.FeePayer}
	if f.Tx.Nonce != nil {
		touched = append(touched, *f.Tx.Nonce)
	}
	for addr := range f.Alloc {
		touched = append(touched, addr)
	}
	for addr := range f.Post {
		touched = append(touched, addr)
	}
	for _, addr := range touched {
		if acc := rawdb.ReadAccount(db, addr); acc != nil {
			out.State[addr] = newFixtureAccount(acc)
		}
	}
	return out, nil
}

// runCmd is the run command.
func runCmd(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return errors.New("expected exactly one fixture file argument")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	f, err := loadFixture(ctx.Args().First())
	if err != nil {
		return err
	}
	db, err := rawdb.Open(cfg.DB.openOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := runFixture(db, &cfg.Processor, f)
	if err != nil {
		return err
	}
	log.Debug("Fixture processed", "rollback", res.Rollback, "count", res.Count, "cost", res.Cost)
	blob, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(blob))
	return err
}
