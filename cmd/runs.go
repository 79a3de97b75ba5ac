package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/localrank/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past analyses from the history store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		location, _ := cmd.Flags().GetString("location")
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		analyses, err := s.ListAnalyses(ctx, store.Filter{Location: location, Limit: limit})
		if err != nil {
			return err
		}

		type summary struct {
			ID            string  `json:"id"`
			Location      string  `json:"location"`
			Target        string  `json:"target"`
			Keywords      int     `json:"keywords"`
			AvgVisibility float64 `json:"avg_visibility"`
			CreatedAt     string  `json:"created_at"`
		}
		summaries := make([]summary, 0, len(analyses))
		for _, a := range analyses {
			summaries = append(summaries, summary{
				ID:            a.ID,
				Location:      a.Location,
				Target:        a.Target.Name,
				Keywords:      len(a.Keywords),
				AvgVisibility: a.AvgTargetVisibility,
				CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	},
}

func init() {
	runsCmd.Flags().String("location", "", "filter by location text")
	runsCmd.Flags().Int("limit", 20, "max analyses to list")
	rootCmd.AddCommand(runsCmd)
}
