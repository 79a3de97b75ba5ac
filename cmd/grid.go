package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/localrank/internal/export"
	"github.com/sells-group/localrank/internal/grid"
	"github.com/sells-group/localrank/internal/resolve"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Generate a sampling grid around a location",
	Long:  "Resolves the location and generates concentric rings of sample points, printed as JSON or exported as GeoJSON for map rendering.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		location, _ := cmd.Flags().GetString("location")
		preset, _ := cmd.Flags().GetString("preset")
		geojsonPath, _ := cmd.Flags().GetString("geojson")

		if preset == "" {
			preset = cfg.Grid.Preset
		}
		rings, err := grid.Preset(preset)
		if err != nil {
			return err
		}

		// The grid command works offline: coordinates and gazetteer only.
		gaz, err := initGazetteer()
		if err != nil {
			return err
		}
		resolver := resolve.New(nil, nil, gaz)
		resolved := resolver.Resolve(ctx, location)

		g, err := grid.Generate(resolved.Coordinate(), rings)
		if err != nil {
			return err
		}

		zap.L().Info("grid generated",
			zap.String("preset", preset),
			zap.String("strategy", resolved.SourceStrategy),
			zap.Int("points", len(g.AllPoints)),
		)

		if geojsonPath != "" {
			return writeFile(geojsonPath, func(f *os.File) error { return export.WriteGridGeoJSON(f, g) })
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	},
}

func init() {
	gridCmd.Flags().StringP("location", "l", "", "location text, place name, or lat,lng")
	gridCmd.Flags().StringP("preset", "p", "", "ring density preset (default|dense|wide)")
	gridCmd.Flags().String("geojson", "", "write the grid to a GeoJSON file")
	rootCmd.AddCommand(gridCmd)
}
