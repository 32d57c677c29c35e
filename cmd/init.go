package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repograph/repograph/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize repograph configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure repograph and generates a .repograph.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
