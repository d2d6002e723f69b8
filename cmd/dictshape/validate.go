package main

import (
	"github.com/aretw0/dictshape/internal/cli"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "validate --template TEMPLATE RECORD...",
		Short: "Check records against a template",
		Long: `Checks every record file against the template and reports the first
divergence per record as "mismatched keys: <path>" or "bad type: <path>".
Exits with status 2 if any record does not match.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *cli.Env) error {
				results, err := cli.RunValidate(cmd.Context(), env, templatePath, args)
				if err != nil {
					return err
				}
				if err := cli.WriteValidation(env, results); err != nil {
					return err
				}
				if cli.Failed(results) {
					return cli.ErrValidationFailed
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file (.yaml, .yml or .json)")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
