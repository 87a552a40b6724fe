package benchmark

import (
	"fmt"
	"testing"

	"github.com/homematch/homematch/internal/matching"
	"github.com/homematch/homematch/internal/models"
)

func benchListings(n int) []*models.Listing {
	areas := []string{"朝阳区", "海淀区", "西城区", "东城区", "丰台区"}
	listings := make([]*models.Listing, n)
	for i := 0; i < n; i++ {
		listings[i] = &models.Listing{
			ID:             fmt.Sprintf("B%04d", i),
			Price:          2_000_000 + float64(i%40)*100_000,
			Area:           areas[i%len(areas)],
			SchoolDistrict: "朝阳实验小学",
			CommuteMinutes: 10 + i%50,
		}
	}
	return listings
}

func BenchmarkRank(b *testing.B) {
	engine, err := matching.NewEngine(matching.DefaultWeights(), nil, nil)
	if err != nil {
		b.Fatal(err)
	}
	pref := models.PreferenceRecord{BudgetText: "300-500万", AreaText: "朝阳区", CommuteText: "30分钟"}
	for _, size := range []int{10, 100, 1000} {
		listings := benchListings(size)
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = engine.Rank(listings, pref, 5)
			}
		})
	}
}

func BenchmarkNormalize(b *testing.B) {
	engine, err := matching.NewEngine(matching.DefaultWeights(), nil, nil)
	if err != nil {
		b.Fatal(err)
	}
	rec := models.PreferenceRecord{BudgetText: "300-500万", AreaText: "朝阳区", CommuteText: "30分钟"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Normalize(rec)
	}
}
