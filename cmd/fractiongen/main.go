package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractiongen/internal/cli"
	"github.com/matzehuels/fractiongen/pkg/buildinfo"
	errs "github.com/matzehuels/fractiongen/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := run(ctx, c); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		c.Logger.Error(errs.UserMessage(err), "code", errs.CodeOf(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.CLI) error {
	var verbose bool

	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		c.Logger.Debug("starting", "version", buildinfo.Short())
		return nil
	}

	return root.ExecuteContext(ctx)
}
