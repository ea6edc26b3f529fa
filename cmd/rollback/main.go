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

// rollback runs transaction fixtures against an accounts store and reports
// the state committed for them, including the rollback accounts of failed
// transactions.
package main

import (
	"fmt"
	"os"

	"github.com/solgo/go-svm/core/rawdb"
	"github.com/urfave/cli/v2"
)

const (
	databaseCategory = "DATABASE"
	loggingCategory  = "LOGGING AND DEBUGGING"
)

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	DataDirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Data directory for persistent accounts databases",
		Category: databaseCategory,
	}
	DBEngineFlag = &cli.StringFlag{
		Name:     "db.engine",
		Usage:    "Backing database implementation to use ('memory', 'leveldb' or 'pebble')",
		Value:    rawdb.DBMemory,
		Category: databaseCategory,
	}
	CacheFlag = &cli.IntFlag{
		Name:     "cache",
		Usage:    "Megabytes of memory allocated to database caching",
		Value:    defaultConfig.DB.Cache,
		Category: databaseCategory,
	}
	HandlesFlag = &cli.IntFlag{
		Name:     "handles",
		Usage:    "Number of file handles the database may keep open",
		Value:    defaultConfig.DB.Handles,
		Category: databaseCategory,
	}
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: loggingCategory,
	}
	LogFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Also write logs to the given file, rotating it when it grows large",
		Category: loggingCategory,
	}
)

var (
	runCommand = &cli.Command{
		Name:      "run",
		Usage:     "Runs a transaction fixture and prints the committed state",
		ArgsUsage: "<fixture.json>",
		Action:    runCmd,
	}
	dumpConfigCommand = &cli.Command{
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		Action:      dumpConfig,
		Description: `The dumpconfig command shows configuration values.`,
	}
)

var app = &cli.App{
	Name:  "rollback",
	Usage: "the transaction rollback command line interface",
	Flags: []cli.Flag{
		ConfigFileFlag,
		DataDirFlag,
		DBEngineFlag,
		CacheFlag,
		HandlesFlag,
		VerbosityFlag,
		LogFileFlag,
	},
	Commands: []*cli.Command{
		runCommand,
		dumpConfigCommand,
	},
	Before: setupLogging,
	After:  closeLogging,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
