package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/config"
	"github.com/aryanwebd35/portfolio/internal/content"
	"github.com/aryanwebd35/portfolio/internal/observability"
)

var (
	contentFile string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a starfield and an FAQ assistant",
	Long: `Serves a single-page portfolio with an animated starfield background
and a keyword-matching assistant that answers common questions about the
profile. The assistant and the starfield can also be driven from the
terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			observability.SetLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "profile content file (default $CONTENT_PATH or portfolio.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadProfile reads the profile named by --content, falling back to the
// configured path. A missing file yields the built-in profile.
func loadProfile(cfg *config.Config) (content.Profile, error) {
	path := contentFile
	if path == "" {
		path = cfg.ContentPath
	}
	p, err := content.Load(path)
	if err != nil {
		return content.Profile{}, fmt.Errorf("loading content: %w", err)
	}
	return p, nil
}

func loadConfigAndProfile() (*config.Config, content.Profile, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, content.Profile{}, fmt.Errorf("loading config: %w", err)
	}
	p, err := loadProfile(cfg)
	if err != nil {
		return nil, content.Profile{}, err
	}
	return cfg, p, nil
}
