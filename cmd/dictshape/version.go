package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dictshape"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dictshape",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dictshape version %s\n", strings.TrimSpace(dictshape.Version))
		},
	}
}
