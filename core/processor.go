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
	"fmt"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/solgo/go-svm/common"
	"github.com/solgo/go-svm/core/cost"
	"github.com/solgo/go-svm/core/nonce"
	"github.com/solgo/go-svm/core/rawdb"
	"github.com/solgo/go-svm/core/rollback"
	"github.com/solgo/go-svm/core/types"
)

// Transaction is the part of a transaction the processor needs in order to
// charge it and to roll it back.
type Transaction struct {
	FeePayer        common.Pubkey
	Fee             uint64
	Nonce           *common.Pubkey // durable nonce account, nil for blockhash transactions
	RecentBlockhash common.Hash
}

// BlockEnv describes the block the transaction is processed in.
type BlockEnv struct {
	Blockhash            common.Hash
	LamportsPerSignature uint64
}

// ExecuteFunc executes a transaction against its loaded accounts, returning
// the accounts to commit on success. The accounts handed in are private copies
// the function may modify.
type ExecuteFunc func(accounts []types.TransactionAccount) ([]types.TransactionAccount, error)

// Result is the outcome of processing a transaction.
type Result struct {
	Err      error             // execution error, nil if the transaction succeeded
	Rollback rollback.Accounts // accounts committed if execution failed
	Cost     uint64            // compute units charged for the rollback accounts, zero on success
}

// Failed reports whether execution failed and the rollback accounts were
// committed instead of the execution output.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Processor charges transactions, runs them and commits either their output
// or, if execution fails, their rollback accounts.
type Processor struct {
	db     ethdb.Database
	config *Config
	log    log.Logger
}

// NewProcessor creates a processor operating on the given accounts store.
func NewProcessor(db ethdb.Database, config *Config) *Processor {
	if config == nil {
		config = &DefaultConfig
	}
	return &Processor{
		db:     db,
		config: config,
		log:    log.New("module", "svm"),
	}
}

// Process loads the fee payer and nonce accounts of tx, charges the fee,
// advances the nonce and executes the transaction. Loading errors are returned
// without touching the store. Execution errors are reported in the result;
// the fee and nonce advance are committed regardless.
func (p *Processor) Process(tx *Transaction, env *BlockEnv, exec ExecuteFunc) (*Result, error) {
	feePayer, loadedRentEpoch, err := p.loadFeePayer(tx)
	if err != nil {
		return nil, err
	}
	var info *nonce.Info
	if tx.Nonce != nil {
		if info, err = p.loadNonce(tx, feePayer, env); err != nil {
			return nil, err
		}
	}
	accounts := rollback.New(info, tx.FeePayer, feePayer, loadedRentEpoch)

	// Execution observes the charged fee payer and the advanced nonce.
	loaded := []types.TransactionAccount{
		types.TransactionAccount{Address: tx.FeePayer, Account: feePayer}.Copy(),
	}
	if info != nil {
		if info.Address == tx.FeePayer {
			loaded[0].Account.SetDataFromSlice(info.Account.Data)
		} else {
			loaded = append(loaded, types.TransactionAccount{Address: info.Address, Account: info.Account}.Copy())
		}
	}
	result := &Result{Rollback: accounts}
	output, execErr := exec(loaded)

	batch := p.db.NewBatch()
	if execErr != nil {
		result.Err = execErr
		result.Cost = cost.RollbackCost(accounts)
		rawdb.WriteRollbackAccounts(batch, accounts)
	} else {
		for _, entry := range output {
			rawdb.WriteAccount(batch, entry.Address, entry.Account)
		}
	}
	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction state: %w", err)
	}
	p.report(tx, result)
	return result, nil
}

// loadFeePayer reads the fee payer, records the rent epoch it was loaded with,
// marks it rent exempt where applicable and deducts the fee.
func (p *Processor) loadFeePayer(tx *Transaction) (*types.Account, uint64, error) {
	account := rawdb.ReadAccount(p.db, tx.FeePayer)
	if account == nil {
		return nil, 0, fmt.Errorf("%w: fee payer %s", ErrAccountNotFound, tx.FeePayer)
	}
	loadedRentEpoch := account.RentEpoch
	if account.RentEpoch != RentExemptRentEpoch && p.config.Rent.IsExempt(account.Lamports, account.DataLen()) {
		account.RentEpoch = RentExemptRentEpoch
	}
	if account.Lamports < tx.Fee {
		return nil, 0, fmt.Errorf("%w: have %d, want %d", ErrInsufficientFundsForFee, account.Lamports, tx.Fee)
	}
	account.Lamports -= tx.Fee
	return account, loadedRentEpoch, nil
}

// loadNonce reads the durable nonce account, checks it against the
// transaction and advances it to the durable nonce of the current block. A
// nonce account paying its own fee is taken from the charged fee payer.
func (p *Processor) loadNonce(tx *Transaction, feePayer *types.Account, env *BlockEnv) (*nonce.Info, error) {
	address := *tx.Nonce

	account := feePayer
	if address != tx.FeePayer {
		if account = rawdb.ReadAccount(p.db, address); account == nil {
			return nil, fmt.Errorf("%w: nonce %s", ErrAccountNotFound, address)
		}
	}
	if account.Owner != nonce.SystemProgram {
		return nil, fmt.Errorf("%w: owned by %s", ErrInvalidNonceAccount, account.Owner)
	}
	info := nonce.NewInfo(address, account)
	state, err := info.State()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNonceAccount, err)
	}
	if !state.Initialized() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNonceAccount, nonce.ErrUninitialized)
	}
	if state.Data.DurableNonce != tx.RecentBlockhash {
		return nil, fmt.Errorf("%w: have %s, want %s", ErrNonceMismatch, tx.RecentBlockhash, state.Data.DurableNonce)
	}
	next := nonce.DurableNonceFromBlockhash(env.Blockhash)
	if next == state.Data.DurableNonce {
		return nil, ErrNonceAlreadyAdvanced
	}
	if err := info.TryAdvance(next, env.LamportsPerSignature); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNonceAccount, err)
	}
	return info, nil
}

func (p *Processor) report(tx *Transaction, result *Result) {
	if !result.Failed() {
		processSucceededMeter.Mark(1)
		p.log.Trace("Committed transaction", "feepayer", tx.FeePayer, "fee", tx.Fee)
		return
	}
	processFailedMeter.Mark(1)
	rollbackDataCounter.Inc(int64(result.Rollback.DataSize()))

	switch result.Rollback.(type) {
	case *rollback.FeePayerOnly:
		rollbackFeePayerOnlyMeter.Mark(1)
	case *rollback.SameNonceAndFeePayer:
		rollbackSameMeter.Mark(1)
	case *rollback.SeparateNonceAndFeePayer:
		rollbackSeparateMeter.Mark(1)
	}
	p.log.Debug("Rolled back failed transaction", "feepayer", tx.FeePayer, "fee", tx.Fee,
		"rollback", RollbackKind(result.Rollback), "accounts", result.Rollback.Count(), "size", result.Rollback.DataSize(),
		"cost", result.Cost, "err", result.Err)
}

// RollbackKind names the shape of a rollback snapshot.
func RollbackKind(accounts rollback.Accounts) string {
	switch accounts.(type) {
	case *rollback.FeePayerOnly:
		return "FeePayerOnly"
	case *rollback.SameNonceAndFeePayer:
		return "SameNonceAndFeePayer"
	case *rollback.SeparateNonceAndFeePayer:
		return "SeparateNonceAndFeePayer"
	default:
		return "unknown"
	}
}
