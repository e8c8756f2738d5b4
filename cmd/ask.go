package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/assistant"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question the way the site's assistant would",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, profile, err := loadConfigAndProfile()
		if err != nil {
			return err
		}
		reply := assistant.NewEngine(profile, nil).Reply(strings.Join(args, " "))
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "rule: %s\n", reply.Rule)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
