package cmd

import (
	"fmt"
	"strconv"

	"github.com/khanhnv2901/laberator-checker/internal/checker"
	consts "github.com/khanhnv2901/laberator-checker/internal/shared/constants"
	"github.com/khanhnv2901/laberator-checker/internal/status"
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put <host> <flag_id> <flag> <vuln>",
	Short: "Plant a flag and print its flag identifier",
	Long: `Register a fresh account on the service, store the flag as a label and
print "login,password,hash" on standard output. The flag_id argument is a
placeholder supplied by the scoring system and is ignored.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, flag, vuln := args[0], args[2], args[3]
		if err := requireVuln("put", vuln); err != nil {
			return err
		}

		id, err := newChecker().Put(cmd.Context(), host, flag)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id.Encode())
		return nil
	},
}

func newChecker() *checker.Checker {
	return checker.New(checker.Config{
		Port:        cliConfig.Port,
		Timeout:     cliConfig.Timeout(),
		ChannelPath: cliConfig.ChannelPath,
		Logger:      logger,
	})
}

func requireVuln(op, vuln string) error {
	n, err := strconv.Atoi(vuln)
	if err != nil || n < 1 || n > consts.SupportedVulns {
		return status.Internal(op, &UnsupportedVulnError{Vuln: vuln})
	}
	return nil
}
