package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/localrank/internal/analysis"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/pkg/places"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Sample target visibility across a geographic grid",
	Long:  "Generates a sampling grid around the location and runs one keyword search per grid point, producing per-point target ranks for heatmap rendering.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		location, _ := cmd.Flags().GetString("location")
		keyword, _ := cmd.Flags().GetString("keyword")
		targetName, _ := cmd.Flags().GetString("target")
		targetRef, _ := cmd.Flags().GetString("target-ref")
		preset, _ := cmd.Flags().GetString("preset")
		radiusM, _ := cmd.Flags().GetFloat64("radius-m")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		if preset == "" {
			preset = cfg.Grid.Preset
		}
		if concurrency <= 0 {
			concurrency = cfg.Grid.Concurrency
		}

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		result, err := analyzer.Scan(ctx, analysis.ScanRequest{
			Location:    location,
			Keyword:     keyword,
			Target:      model.TargetDescriptor{Name: targetName, ExternalRef: targetRef},
			Preset:      preset,
			RadiusM:     radiusM,
			Concurrency: concurrency,
		})
		if err != nil {
			if places.IsQuotaOrAuth(err) {
				return eris.Wrap(err, "provider rejected the request; check the API key and quota")
			}
			return err
		}

		found := 0
		for _, p := range result.Points {
			if p.Found {
				found++
			}
		}
		zap.L().Info("scan complete",
			zap.Int("points", len(result.Points)),
			zap.Int("points_with_target", found),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	scanCmd.Flags().StringP("location", "l", "", "location text, address, or lat,lng")
	scanCmd.Flags().StringP("keyword", "k", "", "search keyword")
	scanCmd.Flags().StringP("target", "t", "", "target business name")
	scanCmd.Flags().String("target-ref", "", "target place identifier")
	scanCmd.Flags().StringP("preset", "p", "", "ring density preset (default|dense|wide)")
	scanCmd.Flags().Float64("radius-m", 2000, "per-point search radius in meters")
	scanCmd.Flags().Int("concurrency", 0, "max parallel point searches")
	_ = scanCmd.MarkFlagRequired("keyword")
	rootCmd.AddCommand(scanCmd)
}
