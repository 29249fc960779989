package climate

import (
	"testing"

	"paradecast/internal/models"
)

// trendRecords builds one record per year with the given average
// temperatures, starting at 2010.
func trendRecords(avgs ...float64) []models.DailyRecord {
	records := make([]models.DailyRecord, len(avgs))
	for i, avg := range avgs {
		records[i] = models.DailyRecord{Year: 2010 + i, Month: 1, TempAvg: avg, TempMax: avg + 5}
	}
	return records
}

func TestTrendClassification(t *testing.T) {
	tests := []struct {
		name       string
		earlyAvg   float64
		recentAvg  float64
		wantStatus string
	}{
		{"significant warming", 20.0, 21.2, TrendSignificantWarming},
		{"warming trend", 20.0, 20.7, TrendWarming},
		{"cooling trend", 20.0, 19.3, TrendCooling},
		{"stable", 20.0, 20.2, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 12 years: first 5 at earlyAvg, last 5 at recentAvg, middle
			// years excluded from both windows.
			avgs := make([]float64, 12)
			for i := range avgs {
				switch {
				case i < 5:
					avgs[i] = tt.earlyAvg
				case i >= 7:
					avgs[i] = tt.recentAvg
				default:
					avgs[i] = (tt.earlyAvg + tt.recentAvg) / 2
				}
			}
			got := Trend(trendRecords(avgs...))
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (difference %v)", got.Status, tt.wantStatus, got.Difference)
			}
			if len(got.EarlyYears) != 5 || len(got.RecentYears) != 5 {
				t.Errorf("window sizes = %d/%d, want 5/5", len(got.EarlyYears), len(got.RecentYears))
			}
			if got.EarlyYears[0] != 2010 {
				t.Errorf("EarlyYears[0] = %d, want 2010", got.EarlyYears[0])
			}
			if got.RecentYears[4] != 2021 {
				t.Errorf("RecentYears[4] = %d, want 2021", got.RecentYears[4])
			}
			if got.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestTrendInsufficientData(t *testing.T) {
	got := Trend(trendRecords(20, 20, 21, 21, 22))
	if got.Status != TrendInsufficientData {
		t.Errorf("Status = %q, want INSUFFICIENT_DATA for 5 years", got.Status)
	}
}

func TestTrendNoData(t *testing.T) {
	got := Trend(nil)
	if got.Status != TrendUnknown {
		t.Errorf("Status = %q, want UNKNOWN", got.Status)
	}
}
