// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tierlock/tierlock/log"
	"github.com/tierlock/tierlock/lvldb"
	"github.com/tierlock/tierlock/tier"
)

func initLogger(ctx *cli.Context) {
	var level slog.Level
	switch ctx.Int(verbosityFlag.Name) {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 2:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetDefault(slog.NewTextHandler(os.Stderr, opts))
	} else {
		log.SetDefault(slog.NewJSONHandler(os.Stderr, opts))
	}
}

func openMainDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	if ctx.Bool(memFlag.Name) {
		return lvldb.NewMem()
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.New("unable to resolve data directory, set --" + dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}

	db, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	return db, nil
}

func requireAddressFlag(ctx *cli.Context, name string) (tier.Address, error) {
	value := ctx.String(name)
	if value == "" {
		return tier.Address{}, errors.Errorf("--%s required on first start", name)
	}
	addr, err := tier.ParseAddress(value)
	if err != nil {
		return tier.Address{}, errors.WithMessage(err, name)
	}
	return *addr, nil
}
