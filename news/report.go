package news

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReportSheet is the name of the single worksheet in the generated report.
const ReportSheet = "Results"

// dateFormat is the cell format used for article dates in the report.
const dateFormat = "2006-01-02 15:04:05"

// WriteReport renders the collected articles as a single-sheet workbook at
// path. One row per article with the HasMoney flag and the occurrence count
// of phrase evaluated against each article.
func WriteReport(articles []Article, phrase, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(ReportSheet)
	if err != nil {
		return fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default worksheet: %w", err)
	}

	header := []any{"Title", "Description", "Date", "HasMoney", "Phrase Occurrences"}
	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, article := range articles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute row cell: %w", err)
		}
		row := []any{
			article.Title,
			article.Description,
			article.Date.Format(dateFormat),
			article.HasMoney(),
			article.CountPhraseOccurrences(phrase),
		}
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
