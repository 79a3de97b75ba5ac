package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/localrank/internal/analysis"
	"github.com/sells-group/localrank/internal/export"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/pkg/places"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a visibility analysis for a target business",
	Long:  "Resolves the location, searches each keyword, ranks the results, identifies the target, and prints or exports the outcome.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		location, _ := cmd.Flags().GetString("location")
		keywords, _ := cmd.Flags().GetStringSlice("keyword")
		targetName, _ := cmd.Flags().GetString("target")
		targetRef, _ := cmd.Flags().GetString("target-ref")
		targetAddr, _ := cmd.Flags().GetString("target-address")
		minRating, _ := cmd.Flags().GetFloat64("min-rating")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		sortBy, _ := cmd.Flags().GetString("sort-by")
		radiusKM, _ := cmd.Flags().GetFloat64("radius-km")
		csvPath, _ := cmd.Flags().GetString("csv")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")
		noSave, _ := cmd.Flags().GetBool("no-save")

		fc, err := filterFromFlags(minRating, maxResults, sortBy, radiusKM)
		if err != nil {
			return err
		}

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		result, err := analyzer.Run(ctx, analysis.Request{
			Location: location,
			Keywords: keywords,
			Target: model.TargetDescriptor{
				Name:        targetName,
				Address:     targetAddr,
				ExternalRef: targetRef,
			},
			Filter: fc,
		})
		if err != nil {
			if places.IsQuotaOrAuth(err) {
				return eris.Wrap(err, "provider rejected the request; check the API key and quota")
			}
			return err
		}

		if !noSave {
			s, storeErr := initStore(ctx)
			if storeErr != nil {
				zap.L().Warn("history store unavailable, skipping save", zap.Error(storeErr))
			} else {
				defer s.Close() //nolint:errcheck
				if saveErr := s.SaveAnalysis(ctx, result); saveErr != nil {
					zap.L().Warn("failed to save analysis", zap.Error(saveErr))
				}
			}
		}

		if csvPath != "" {
			if err := writeFile(csvPath, func(f *os.File) error { return export.WriteCSV(f, result) }); err != nil {
				return err
			}
		}
		if xlsxPath != "" {
			if err := writeFile(xlsxPath, func(f *os.File) error { return export.WriteXLSX(f, result) }); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close() //nolint:errcheck
	return write(f)
}

func init() {
	analyzeCmd.Flags().StringP("location", "l", "", "location text, address, or lat,lng")
	analyzeCmd.Flags().StringSliceP("keyword", "k", nil, "search keyword (repeatable)")
	analyzeCmd.Flags().StringP("target", "t", "", "target business name")
	analyzeCmd.Flags().String("target-ref", "", "target place identifier")
	analyzeCmd.Flags().String("target-address", "", "target business address")
	analyzeCmd.Flags().Float64("min-rating", -1, "drop results rated below this")
	analyzeCmd.Flags().Int("max-results", 0, "truncate output to this many results")
	analyzeCmd.Flags().String("sort-by", "", "relevance|rating|reviews|distance")
	analyzeCmd.Flags().Float64("radius-km", 0, "search radius in kilometers")
	analyzeCmd.Flags().String("csv", "", "write results to a CSV file")
	analyzeCmd.Flags().String("xlsx", "", "write results to an XLSX file")
	analyzeCmd.Flags().Bool("no-save", false, "skip saving the analysis to history")
	_ = analyzeCmd.MarkFlagRequired("keyword")
	rootCmd.AddCommand(analyzeCmd)
}
