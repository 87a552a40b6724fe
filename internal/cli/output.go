// Package cli provides output formatting for the homematch CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/homematch/homematch/internal/models"
	"github.com/homematch/homematch/pkg/utils"
)

// ReportFormat is the format for recommendation report output.
type ReportFormat string

const (
	// OutputText is human-readable text (default).
	OutputText ReportFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON ReportFormat = "json"
	// OutputCompact is one recommendation per line.
	OutputCompact ReportFormat = "compact"
)

// WriteReport writes a summary report to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteReport(w io.Writer, report *models.SummaryReport, format ReportFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case OutputCompact:
		writeReportCompact(w, report)
		return nil
	default:
		writeReportText(w, report)
		return nil
	}
}

func writeReportText(w io.Writer, report *models.SummaryReport) {
	if report.Message != "" {
		fmt.Fprintf(w, "\n%s\n", report.Message)
		if report.SkippedListings > 0 {
			fmt.Fprintf(w, "(%d listing(s) skipped for missing price data)\n", report.SkippedListings)
		}
		return
	}
	fmt.Fprintf(w, "\nFound %d recommendation(s), average score %.2f\n",
		report.TotalRecommendations, report.AverageMatchingScore)
	if report.PriceRange != nil {
		fmt.Fprintf(w, "Price range: %.0f - %.0f\n", report.PriceRange.Min, report.PriceRange.Max)
	}
	if report.SkippedListings > 0 {
		fmt.Fprintf(w, "Skipped %d listing(s) for missing price data\n", report.SkippedListings)
	}
	fmt.Fprintln(w)
	for _, rec := range report.Recommendations {
		writeOneRecommendation(w, rec)
	}
}

func writeOneRecommendation(w io.Writer, rec *models.RecommendationEntry) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.2f (Budget: %.2f, Area: %.2f, School: %.2f, Commute: %.2f)\n",
		rec.Rank, rec.MatchingScore,
		rec.ScoreBreakdown.Budget, rec.ScoreBreakdown.Area,
		rec.ScoreBreakdown.School, rec.ScoreBreakdown.Commute)
	fmt.Fprintf(w, "ID: %s\n", rec.ListingID)
	if rec.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", rec.Address)
	}
	fmt.Fprintf(w, "Price: %.0f | Area: %s | School: %s | Commute: %d min\n",
		rec.Price, rec.Area, rec.SchoolDistrict, rec.CommuteMinutes)
	fmt.Fprintf(w, "\n%s\n", utils.Truncate(rec.Reason, 200))
	fmt.Fprintln(w)
}

func writeReportCompact(w io.Writer, report *models.SummaryReport) {
	if report.Message != "" {
		fmt.Fprintln(w, report.Message)
		return
	}
	for _, rec := range report.Recommendations {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n",
			rec.Rank, rec.ListingID, rec.MatchingScore, rec.Area, rec.Reason)
	}
}
