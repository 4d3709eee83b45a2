package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize timesleuth configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure timesleuth and generates a .timesleuth.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
