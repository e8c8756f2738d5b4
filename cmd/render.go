package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/config"
	"github.com/aryanwebd35/portfolio/internal/starfield"
)

var (
	renderFrames int
	renderWidth  int
	renderHeight int
	renderOut    string
	renderSeed   uint64
	renderStars  int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render starfield frames to PNG files",
	Long: `Advances a starfield and writes each frame as a PNG. With more than one
frame the output name gets a frame number, e.g. starfield-007.png.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderFrames <= 0 {
			return fmt.Errorf("--frames must be positive")
		}
		if renderWidth < 0 || renderHeight < 0 {
			return fmt.Errorf("--width and --height must not be negative")
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fcfg := starfield.DefaultConfig()
		fcfg.Count = cfg.StarCount
		if renderStars > 0 {
			fcfg.Count = renderStars
		}
		var rng *rand.Rand
		if renderSeed != 0 {
			rng = rand.New(rand.NewPCG(renderSeed, renderSeed))
		}
		field := starfield.NewField(fcfg, renderWidth, renderHeight, rng)
		raster := starfield.NewRaster(renderWidth, renderHeight)

		bar := progressbar.NewOptions(renderFrames,
			progressbar.OptionSetDescription("Rendering"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		for i := range renderFrames {
			field.Tick()
			field.Render(raster)
			if err := writeFrame(frameName(renderOut, i, renderFrames), raster); err != nil {
				return err
			}
			_ = bar.Add(1)
		}
		_ = bar.Finish()
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frame(s) of %d stars at %dx%d\n", renderFrames, fcfg.Count, renderWidth, renderHeight)
		return nil
	},
}

func frameName(out string, i, total int) string {
	if total == 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), i, ext)
}

func writeFrame(path string, r *starfield.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func init() {
	renderCmd.Flags().IntVar(&renderFrames, "frames", 1, "number of frames to render")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1280, "frame width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 720, "frame height in pixels")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "starfield.png", "output file")
	renderCmd.Flags().Uint64Var(&renderSeed, "seed", 0, "random seed (0 picks one)")
	renderCmd.Flags().IntVar(&renderStars, "stars", 0, "particle count (default $STAR_COUNT)")
	rootCmd.AddCommand(renderCmd)
}
