package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/typewriter"
)

var bannerCycles int

var bannerCmd = &cobra.Command{
	Use:   "banner",
	Short: "Play the hero role typewriter in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, profile, err := loadConfigAndProfile()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		roles := profile.Roles
		if len(roles) == 0 {
			roles = []string{profile.Role}
		}

		fmt.Fprintf(out, "Hi, I'm %s\n", profile.Name)
		tw := typewriter.New(roles)
		ctx := cmd.Context()
		start := time.Now()
		// Each role is typed out once per cycle; stop after the last hold.
		for typed := 0; typed < bannerCycles*len(roles); {
			cursor := " "
			if typewriter.CursorVisible(time.Since(start)) {
				cursor = "|"
			}
			fmt.Fprintf(out, "\r\033[K%s%s", tw.Text(), cursor)

			d := tw.Advance()
			if d == tw.Hold {
				typed++
			}
			select {
			case <-ctx.Done():
				fmt.Fprintln(out)
				return nil
			case <-time.After(d):
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	bannerCmd.Flags().IntVar(&bannerCycles, "cycles", 1, "times to cycle through every role")
	rootCmd.AddCommand(bannerCmd)
}
