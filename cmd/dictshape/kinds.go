package main

import (
	"github.com/aretw0/dictshape/internal/cli"
	"github.com/aretw0/dictshape/pkg/schema"
	"github.com/spf13/cobra"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the type names a template may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *cli.Env) error {
				return cli.WriteKinds(env, schema.KindNames())
			})
		},
	}
}
