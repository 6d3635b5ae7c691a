package cmd

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <host> <flag_id> <flag> <vuln>",
	Short: "Verify a previously planted flag",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, rawID, flag, vuln := args[0], args[1], args[2], args[3]
		if err := requireVuln("get", vuln); err != nil {
			return err
		}
		return newChecker().Get(cmd.Context(), host, rawID, flag)
	},
}
