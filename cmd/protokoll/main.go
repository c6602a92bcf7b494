// Package main is the entry point for the protokoll command line editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fsr-protokoll/editor/internal/app"
	"github.com/fsr-protokoll/editor/internal/cli"
	"github.com/fsr-protokoll/editor/internal/config"
	"github.com/fsr-protokoll/editor/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opened *app.App
	open := func(cmd *cobra.Command, assumeYes bool) (*cli.Env, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		// Logs go to stderr so stdout stays clean for export and show.
		a, err := app.New(cmd.Context(), cfg, app.NewLogger(cfg, os.Stderr))
		if err != nil {
			return nil, err
		}
		opened = a
		return &cli.Env{
			Editor:    a.Editor,
			Roster:    a.Roster,
			Dialog:    term.NewTerminal(assumeYes),
			Clipboard: term.Clipboard{},
		}, nil
	}

	err := cli.NewRootCmd(open).ExecuteContext(ctx)
	if opened != nil {
		if cerr := opened.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err == nil {
		return 0
	}
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintln(os.Stderr, "protokoll:", err)
	return 1
}
