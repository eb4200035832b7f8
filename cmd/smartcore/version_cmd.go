package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the semantic version of the smartcore tool.
const Version = "0.1.0"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of smartcore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("smartcore v%s\n", Version)
		},
	}
}
