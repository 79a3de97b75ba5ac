// Package export serializes analysis output for the UI/export collaborators:
// CSV and XLSX for ranked results, GeoJSON for grids.
package export

import (
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/localrank/internal/model"
)

// resultRow is the flattened CSV/XLSX projection of a BusinessResult.
type resultRow struct {
	Keyword    string  `csv:"keyword"`
	Rank       int     `csv:"rank"`
	Name       string  `csv:"name"`
	Address    string  `csv:"address"`
	Rating     float64 `csv:"rating"`
	Reviews    int     `csv:"reviews"`
	Visibility int     `csv:"visibility"`
	Difficulty string  `csv:"difficulty"`
	IsTarget   bool    `csv:"is_target"`
}

func flatten(a *model.Analysis) []resultRow {
	var rows []resultRow
	for _, kr := range a.Keywords {
		for _, r := range kr.Results {
			rows = append(rows, resultRow{
				Keyword:    kr.Keyword,
				Rank:       r.Rank,
				Name:       r.Name,
				Address:    r.Address,
				Rating:     r.Rating,
				Reviews:    r.ReviewCount,
				Visibility: r.VisibilityScore,
				Difficulty: string(r.Difficulty),
				IsTarget:   r.IsTarget,
			})
		}
	}
	return rows
}

// WriteCSV writes the analysis results as CSV with a header row.
func WriteCSV(w io.Writer, a *model.Analysis) error {
	data, err := csvutil.Marshal(flatten(a))
	if err != nil {
		return eris.Wrap(err, "export: marshal csv")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}
