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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/solgo/go-svm/core"
	"github.com/solgo/go-svm/core/rawdb"
	"github.com/urfave/cli/v2"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type dbConfig struct {
	Engine  string
	DataDir string
	Cache   int
	Handles int
}

type rollbackConfig struct {
	Processor core.Config
	DB        dbConfig
}

var defaultConfig = rollbackConfig{
	Processor: core.DefaultConfig,
	DB: dbConfig{
		Engine:  rawdb.DBMemory,
		Cache:   16,
		Handles: 16,
	},
}

func loadConfig(file string, cfg *rollbackConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	var lineErr *toml.LineError
	if errors.As(err, &lineErr) {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the command
// line flags on top of it.
func makeConfig(ctx *cli.Context) (*rollbackConfig, error) {
	cfg := defaultConfig
	if file := ctx.String(ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(DBEngineFlag.Name) {
		cfg.DB.Engine = ctx.String(DBEngineFlag.Name)
	}
	if ctx.IsSet(DataDirFlag.Name) {
		cfg.DB.DataDir = ctx.String(DataDirFlag.Name)
	}
	if ctx.IsSet(CacheFlag.Name) {
		cfg.DB.Cache = ctx.Int(CacheFlag.Name)
	}
	if ctx.IsSet(HandlesFlag.Name) {
		cfg.DB.Handles = ctx.Int(HandlesFlag.Name)
	}
	return &cfg, nil
}

func (c *dbConfig) openOptions() rawdb.OpenOptions {
	return rawdb.OpenOptions{
		Type:      c.Engine,
		Directory: c.DataDir,
		Namespace: "rollback/db/accounts/",
		Cache:     c.Cache,
		Handles:   c.Handles,
	}
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
