package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openscan/vuln-manager/internal/config"
)

// Execute runs the root command.
func Execute() error {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	root := &cobra.Command{
		Use:          "vuln-manager",
		Short:        "Vulnerability management backend",
		SilenceUsage: true,
	}
	root.AddCommand(NewRunCommand(cfg))

	return root.Execute()
}
