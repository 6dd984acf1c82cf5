// Package cli provides the command-line interface for jsdocgen.
package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsdocgen",
		Short: "Generate a documentation model from tag-annotated JavaScript",
	}

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jsdocgen version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version)
		},
	}
}
