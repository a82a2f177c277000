// Package export writes ranked project matches as spreadsheets and HTML reports.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/jonathan/stackmatch/internal/types"
)

// SheetName is the worksheet that holds the matches.
const SheetName = "Matches"

// Header is the first row of the matches sheet.
var Header = []string{
	"ID", "Title", "Category", "Difficulty", "Match %",
	"Matched Skills", "Missing Skills", "Estimated Time",
}

// WriteMatchesXLSX writes one row per project after the header row.
func WriteMatchesXLSX(w io.Writer, matches []types.MatchedProject) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range Header {
		header.AddCell().SetString(h)
	}

	for _, m := range matches {
		row := sheet.AddRow()
		row.AddCell().SetString(m.ID)
		row.AddCell().SetString(m.Title)
		row.AddCell().SetString(string(m.Category))
		row.AddCell().SetString(string(m.Difficulty))
		row.AddCell().SetInt(m.MatchPercentage)
		row.AddCell().SetString(strings.Join(m.MatchedSkills, ", "))
		row.AddCell().SetString(strings.Join(m.MissingSkills, ", "))
		row.AddCell().SetString(m.EstimatedTime)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
