package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/dictshape/internal/cli"
	"github.com/aretw0/dictshape/internal/config"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitInvalid = 2
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dictshape",
		Short: "Validate nested records against templates and merge numeric maps",
		Long: `dictshape checks YAML or JSON records against a template of expected keys
and value types, and merges key-to-number maps into totals ordered by value.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")
	pf.StringP("output", "o", "", "Output format: text, json or markdown")
	pf.String("metrics-file", "", "Write Prometheus metrics to this file after the run")

	root.AddCommand(
		newValidateCmd(),
		newMergeCmd(),
		newGraphCmd(),
		newKindsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, newRootCmd())
}

func execute(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrValidationFailed):
		return exitInvalid
	}
	fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	return exitError
}

// setupEnv loads configuration for the current working directory and the
// command's flags.
func setupEnv(cmd *cobra.Command) (*cli.Env, error) {
	cfg, err := config.Load(".", cmd.Flags())
	if err != nil {
		return nil, err
	}
	return cli.NewEnv(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// withEnv runs fn with a fresh Env and flushes it afterwards.
func withEnv(cmd *cobra.Command, fn func(env *cli.Env) error) (err error) {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := env.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(env)
}
