// Package main is the entry point for the classmeta CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/classmeta/cmd/classmeta/commands"
	"go.trai.ch/classmeta/internal/app"
	"go.trai.ch/classmeta/internal/core/domain"
	_ "go.trai.ch/classmeta/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

type verboseSetter interface {
	SetVerbose(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available when initialization fails.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	if v, ok := components.Logger.(verboseSetter); ok {
		cli.SetVerboseFunc(v.SetVerbose)
	}
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// The warm-up report already lists the failed classes.
		if errors.Is(err, domain.ErrWarmFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
