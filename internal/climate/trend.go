package climate

import (
	"fmt"
	"math"
	"sort"

	"paradecast/internal/models"
)

// Trend status classifications, from strongest warming to cooling.
const (
	TrendSignificantWarming = "SIGNIFICANT_WARMING"
	TrendWarming            = "WARMING_TREND"
	TrendCooling            = "COOLING_TREND"
	TrendStable             = "STABLE"
	TrendInsufficientData   = "INSUFFICIENT_DATA"
	TrendUnknown            = "UNKNOWN"
)

// minTrendYears is the minimum distinct years required for a robust
// comparison.
const minTrendYears = 10

// comparisonYears is the span of each comparison window: first N years
// against last N years of the dataset.
const comparisonYears = 5

// Trend compares mean daily-average temperature between the earliest and
// most recent five-year windows of the records and classifies the
// difference: >=1.0C significant warming, >=0.5C warming, <=-0.5C cooling,
// otherwise stable.
func Trend(records []models.DailyRecord) models.TrendAnalysis {
	if len(records) == 0 {
		return models.TrendAnalysis{
			Status:     TrendUnknown,
			Message:    "No data available for trend analysis.",
			DataPeriod: "No data",
		}
	}

	yearSet := make(map[int]bool)
	for _, r := range records {
		yearSet[r.Year] = true
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	if len(years) < minTrendYears {
		return models.TrendAnalysis{
			Status:     TrendInsufficientData,
			Message:    fmt.Sprintf("Insufficient data: trend analysis requires minimum %d years, got %d.", minTrendYears, len(years)),
			DataPeriod: fmt.Sprintf("%d years", len(years)),
		}
	}

	earlyYears := years[:comparisonYears]
	recentYears := years[len(years)-comparisonYears:]
	earlyMean := meanTempAvg(records, earlyYears)
	recentMean := meanTempAvg(records, recentYears)
	difference := round2(recentMean - earlyMean)

	var status, message string
	switch {
	case difference >= 1.0:
		status = TrendSignificantWarming
		message = fmt.Sprintf("SIGNIFICANT WARMING: +%.2fC over %d years. Warming threshold exceeded; heat risk is worsening.", difference, len(years))
	case difference >= 0.5:
		status = TrendWarming
		message = fmt.Sprintf("WARMING TREND: +%.2fC over %d years. Statistically detectable warming; heat risk is increasing.", difference, len(years))
	case difference <= -0.5:
		status = TrendCooling
		message = fmt.Sprintf("COOLING TREND: %.2fC over %d years. Statistically detectable cooling; heat risk is decreasing.", difference, len(years))
	default:
		status = TrendStable
		message = fmt.Sprintf("STABLE CLIMATE: %+.2fC over %d years. Within natural variability; risk remains stable.", difference, len(years))
	}

	return models.TrendAnalysis{
		Status:      status,
		EarlyMean:   round2(earlyMean),
		RecentMean:  round2(recentMean),
		Difference:  difference,
		EarlyYears:  earlyYears,
		RecentYears: recentYears,
		Message:     message,
		DataPeriod:  fmt.Sprintf("%d years (%d-%d)", len(years), years[0], years[len(years)-1]),
	}
}

func meanTempAvg(records []models.DailyRecord, years []int) float64 {
	inWindow := make(map[int]bool, len(years))
	for _, y := range years {
		inWindow[y] = true
	}
	var sum float64
	var n int
	for _, r := range records {
		if inWindow[r.Year] {
			sum += r.TempAvg
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
