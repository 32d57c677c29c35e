package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "repograph",
	Short: "Turn a repository into a typed dependency graph",
	Long: `Repograph fetches a GitHub repository (or walks a local checkout),
classifies every file into a module type, resolves import statements
across languages, and produces a typed graph of files, folders and
dependencies. The same graph is available as JSON on the command line
or over an HTTP API with live build progress.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".repograph.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
