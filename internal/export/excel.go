// Package export writes recommendation reports as Excel workbooks.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/homematch/homematch/internal/models"
)

// ExportReport writes the summary report to an .xlsx workbook at outputPath
// with a summary sheet and a ranked listings sheet.
func ExportReport(report *models.SummaryReport, pref models.PreferenceRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	listingsSheet := "Ranked Listings"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(listingsSheet); err != nil {
		return fmt.Errorf("failed to create listings sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, report, pref); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeListingsSheet(f, listingsSheet, report); err != nil {
		return fmt.Errorf("failed to write listings sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, report *models.SummaryReport, pref models.PreferenceRecord) error {
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 50)

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	setLabeled := func(label string, value interface{}) {
		cellA := fmt.Sprintf("A%d", row)
		cellB := fmt.Sprintf("B%d", row)
		_ = f.SetCellValue(sheet, cellA, label)
		_ = f.SetCellStyle(sheet, cellA, cellA, labelStyle)
		_ = f.SetCellValue(sheet, cellB, value)
		row++
	}

	setLabeled("HomeMatch Recommendation Report", "")
	setLabeled("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	setLabeled("Budget preference:", pref.BudgetText)
	setLabeled("Area preference:", pref.AreaText)
	setLabeled("School preference:", pref.SchoolText)
	setLabeled("Commute preference:", pref.CommuteText)
	row++

	if report.Message != "" {
		setLabeled("Result:", report.Message)
		return nil
	}

	setLabeled("Total recommendations:", report.TotalRecommendations)
	setLabeled("Average matching score:", report.AverageMatchingScore)
	if report.PriceRange != nil {
		setLabeled("Price range:", fmt.Sprintf("%.0f - %.0f", report.PriceRange.Min, report.PriceRange.Max))
	}
	if report.SkippedListings > 0 {
		setLabeled("Listings skipped (missing data):", report.SkippedListings)
	}
	if top := report.TopRecommendation; top != nil {
		row++
		setLabeled("Top recommendation:", top.ListingID)
		setLabeled("Address:", top.Address)
		setLabeled("Price:", top.Price)
		setLabeled("Score:", top.MatchingScore)
		setLabeled("Reason:", top.Reason)
	}
	return nil
}

func writeListingsSheet(f *excelize.File, sheet string, report *models.SummaryReport) error {
	headers := []string{
		"Rank", "Listing ID", "Address", "Price", "Area", "School District",
		"Commute (min)", "Score", "Budget", "Area Fit", "School", "Commute Fit", "Reason",
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, entry := range report.Recommendations {
		values := []interface{}{
			entry.Rank, entry.ListingID, entry.Address, entry.Price, entry.Area,
			entry.SchoolDistrict, entry.CommuteMinutes, entry.MatchingScore,
			entry.ScoreBreakdown.Budget, entry.ScoreBreakdown.Area,
			entry.ScoreBreakdown.School, entry.ScoreBreakdown.Commute, entry.Reason,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}
