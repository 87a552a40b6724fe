package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/homematch/homematch/internal/models"
)

func sampleReport() *models.SummaryReport {
	return &models.SummaryReport{
		TotalRecommendations: 2,
		AverageMatchingScore: 0.84,
		PriceRange:           &models.PriceRange{Min: 3_200_000, Max: 3_500_000},
		TopRecommendation: &models.TopRecommendation{
			ListingID: "P001", Address: "朝阳区建国路88号", Price: 3_500_000,
			MatchingScore: 0.88, Reason: "price fits the budget, prime location",
		},
		Recommendations: []*models.RecommendationEntry{
			{
				Rank: 1, ListingID: "P001", Address: "朝阳区建国路88号",
				Price: 3_500_000, Area: "朝阳区", SchoolDistrict: "朝阳实验小学",
				CommuteMinutes: 25, MatchingScore: 0.88,
				ScoreBreakdown: models.CriterionScores{Budget: 1, Area: 1, School: 0.5, Commute: 1},
				Reason:         "price fits the budget, prime location",
			},
			{
				Rank: 2, ListingID: "P005", Address: "朝阳区望京西路321号",
				Price: 3_200_000, Area: "朝阳区", SchoolDistrict: "朝阳外国语学校",
				CommuteMinutes: 28, MatchingScore: 0.8,
				ScoreBreakdown: models.CriterionScores{Budget: 1, Area: 1, School: 0.5, Commute: 0.9},
				Reason:         "price fits the budget, prime location, convenient commute",
			},
		},
	}
}

func TestExportReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	pref := models.PreferenceRecord{BudgetText: "300-500万", AreaText: "朝阳区"}

	if err := ExportReport(sampleReport(), pref, path); err != nil {
		t.Fatalf("ExportReport: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v", sheets)
	}

	got, err := f.GetCellValue("Ranked Listings", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "P001" {
		t.Errorf("rank-1 listing id cell = %q, want P001", got)
	}
	got, err = f.GetCellValue("Ranked Listings", "A3")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2" {
		t.Errorf("rank cell = %q, want 2", got)
	}
}

func TestExportReport_AppendsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")
	if err := ExportReport(sampleReport(), models.PreferenceRecord{}, path); err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if _, err := excelize.OpenFile(path + ".xlsx"); err != nil {
		t.Errorf("xlsx extension not appended: %v", err)
	}
}

func TestExportReport_NoMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	report := &models.SummaryReport{Message: "no suitable listings found"}
	if err := ExportReport(report, models.PreferenceRecord{}, path); err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
}
