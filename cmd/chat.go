package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/assistant"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	Long:  `Starts an interactive session with the same greeting, rules and reply delay as the web widget. Type "exit" or press Ctrl+C to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, profile, err := loadConfigAndProfile()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		replies := make(chan assistant.Reply, 1)
		chat := assistant.NewChat(assistant.NewEngine(profile, nil),
			assistant.WithDelay(cfg.ReplyDelay),
			assistant.WithReplyHook(func(r assistant.Reply) { replies <- r }),
		)
		chat.Open()
		printMessage(out, chat.Messages()[0].Text)

		for {
			prompt := promptui.Prompt{Label: "You"}
			input, err := prompt.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			switch strings.ToLower(strings.TrimSpace(input)) {
			case "exit", "quit":
				return nil
			}
			if !chat.Submit(input) {
				continue
			}

			fmt.Fprint(out, "typing...")
			r := <-replies
			fmt.Fprint(out, "\r\033[K")
			if verbose {
				fmt.Fprintf(out, "[%s] ", r.Rule)
			}
			printMessage(out, r.Text)
		}
	},
}

// printMessage underlines URLs so they stand out in the terminal.
func printMessage(w io.Writer, text string) {
	var b strings.Builder
	for _, seg := range assistant.Linkify(text) {
		if seg.URL {
			b.WriteString("\033[4m" + seg.Text + "\033[0m")
			continue
		}
		b.WriteString(seg.Text)
	}
	fmt.Fprintln(w, b.String())
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
