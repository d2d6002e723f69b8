package main

import (
	"fmt"

	"github.com/aretw0/dictshape/internal/cli"
	"github.com/aretw0/dictshape/pkg/merge"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Sum key-to-number maps and print totals, highest first",
		Long: `Merges flat YAML or JSON maps by summing values per key. Keys with equal
totals keep the order chosen by the strategy: "ordered" keeps first appearance,
"counting" puts the key whose total settled earliest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *cli.Env) error {
				strategy, err := merge.ParseStrategy(env.Config.Merge.Strategy)
				if err != nil {
					return err
				}
				counts, err := cli.RunMerge(cmd.Context(), env, strategy, args)
				if err != nil {
					return err
				}
				return cli.WriteMerge(env, counts)
			})
		},
	}

	cmd.Flags().StringP("strategy", "s", "", fmt.Sprintf("Merge strategy: %v", merge.Strategies()))
	return cmd
}
