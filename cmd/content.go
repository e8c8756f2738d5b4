package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/content"
)

var (
	exportOut       string
	exportEffective bool
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect the profile content",
}

var contentExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in profile as YAML, as a starting point for --content",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := content.Default()
		if exportEffective {
			var err error
			if _, p, err = loadConfigAndProfile(); err != nil {
				return err
			}
		}
		if exportOut == "-" {
			return p.Encode(cmd.OutOrStdout())
		}
		if err := p.Save(exportOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	contentExportCmd.Flags().StringVarP(&exportOut, "out", "o", "portfolio.yml", `output file ("-" for stdout)`)
	contentExportCmd.Flags().BoolVar(&exportEffective, "effective", false, "export the loaded profile (file and env overrides) instead of the defaults")
	contentCmd.AddCommand(contentExportCmd)
	rootCmd.AddCommand(contentCmd)
}
