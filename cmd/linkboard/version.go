package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/linkboard/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "linkboard", build.String())
		},
	}
}
