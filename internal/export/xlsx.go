package export

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/localrank/internal/model"
)

// WriteXLSX writes the analysis as a workbook with one sheet per keyword.
func WriteXLSX(w io.Writer, a *model.Analysis) error {
	f := xlsx.NewFile()

	for _, kr := range a.Keywords {
		sheet, err := f.AddSheet(sheetName(kr.Keyword))
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %q", kr.Keyword)
		}

		header := sheet.AddRow()
		for _, h := range []string{"rank", "name", "address", "rating", "reviews", "visibility", "difficulty", "is_target"} {
			header.AddCell().Value = h
		}

		for _, r := range kr.Results {
			row := sheet.AddRow()
			row.AddCell().SetInt(r.Rank)
			row.AddCell().Value = r.Name
			row.AddCell().Value = r.Address
			row.AddCell().SetFloat(r.Rating)
			row.AddCell().SetInt(r.ReviewCount)
			row.AddCell().SetInt(r.VisibilityScore)
			row.AddCell().Value = string(r.Difficulty)
			row.AddCell().Value = strconv.FormatBool(r.IsTarget)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// sheetName clips a keyword to Excel's 31-character sheet name limit.
func sheetName(keyword string) string {
	if len(keyword) > 31 {
		return keyword[:31]
	}
	return keyword
}
