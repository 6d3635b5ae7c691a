package cmd

import (
	"fmt"

	consts "github.com/khanhnv2901/laberator-checker/internal/shared/constants"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the checker's capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "vulns: %d\n", consts.SupportedVulns)
		return nil
	},
}
