// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/tierlock/tierlock/api"
	"github.com/tierlock/tierlock/log"
	"github.com/tierlock/tierlock/metrics"
	"github.com/tierlock/tierlock/staking"
	"github.com/tierlock/tierlock/state"
	"github.com/tierlock/tierlock/tier"
	"github.com/tierlock/tierlock/token"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

// well-known ledger addresses of the engine escrow and the token store
var (
	engineAddr = tier.BytesToAddress([]byte("tierlock-engine"))
	tokenAddr  = tier.BytesToAddress([]byte("tierlock-token"))
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "tierlock",
		Usage:     "Time-locked token staking ledger",
		Copyright: "2026 The tierlock developers",
		Flags: []cli.Flag{
			dataDirFlag,
			memFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			ownerFlag,
			depositorFlag,
			feeRecipientFlag,
			supplyFlag,
			pprofFlag,
			enableMetricsFlag,
			enableAPILogsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	mainDB, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	st := state.New(mainDB)
	tok := token.New(tokenAddr, st)
	engine := staking.New(engineAddr, st, tok)

	if err := seedLedger(ctx, st, tok, engine); err != nil {
		return err
	}

	srv, srvURL, err := startAPIServer(ctx, api.New(engine, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	}))
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	printStartupMessage(ctx, srvURL)

	<-handleExitSignal()
	return nil
}

// seedLedger initializes the token supply and the engine config on first
// start. Reopening an existing database leaves both untouched.
func seedLedger(ctx *cli.Context, st *state.State, tok *token.Token, engine *staking.Staking) error {
	supply, err := tok.TotalSupply()
	if err != nil {
		return err
	}
	cfg, err := engine.GetConfig()
	if err != nil {
		return err
	}
	if supply.Sign() != 0 && !cfg.Owner.IsZero() {
		return nil
	}

	owner, err := requireAddressFlag(ctx, ownerFlag.Name)
	if err != nil {
		return err
	}
	depositor, err := requireAddressFlag(ctx, depositorFlag.Name)
	if err != nil {
		return err
	}
	feeRecipient, err := requireAddressFlag(ctx, feeRecipientFlag.Name)
	if err != nil {
		return err
	}

	if supply.Sign() == 0 {
		minted := tier.WholeTokens(int64(ctx.Uint64(supplyFlag.Name)))
		if err := tok.InitializeSupply(depositor, minted); err != nil {
			return err
		}
		if err := st.Commit(); err != nil {
			return err
		}
		logger.Info("token supply minted", "depositor", depositor, "supply", minted)
	}

	if cfg.Owner.IsZero() {
		if err := engine.Initialize(owner, depositor, feeRecipient); err != nil {
			return err
		}
		logger.Info("engine initialized", "owner", owner, "depositor", depositor, "feeRecipient", feeRecipient)
	}
	return nil
}

func handleExitSignal() chan os.Signal {
	exitSignalCh := make(chan os.Signal, 1)
	signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
	return exitSignalCh
}

func startAPIServer(ctx *cli.Context, handler http.HandlerFunc) (*http.Server, string, error) {
	addr := ctx.String(apiAddrFlag.Name)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			logger.Error("API server stopped", "error", err)
		}
	}()

	select {
	case err := <-errCh:
		return nil, "", err
	case <-time.After(100 * time.Millisecond):
	}
	return srv, "http://" + addr + "/", nil
}

func printStartupMessage(ctx *cli.Context, srvURL string) {
	fmt.Printf(`Starting %v
    Version     %v
    Data dir    %v
    API portal  %v
`,
		"tierlock",
		fullVersion(),
		dataDirDisplay(ctx),
		srvURL,
	)
}

func dataDirDisplay(ctx *cli.Context) string {
	if ctx.Bool(memFlag.Name) {
		return "(memory)"
	}
	return ctx.String(dataDirFlag.Name)
}
