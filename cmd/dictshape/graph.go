package main

import (
	"github.com/aretw0/dictshape/internal/cli"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	var recordPath string

	cmd := &cobra.Command{
		Use:   "graph TEMPLATE",
		Short: "Export the template as a Mermaid diagram",
		Long: `Outputs a Mermaid diagram (graph TD) of the template tree. With --record,
the record is validated and its first divergence is highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *cli.Env) error {
				diagram, err := cli.RunGraph(env, args[0], recordPath)
				if err != nil {
					return err
				}
				return cli.WriteGraph(env, diagram)
			})
		},
	}

	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "Record to validate and highlight")
	return cmd
}
