package risk

import (
	"errors"
	"math"
	"testing"

	"paradecast/internal/models"
)

func signalsWithProbabilities(probs ...float64) []models.RiskSignal {
	signals := make([]models.RiskSignal, len(probs))
	for i, p := range probs {
		signals[i] = models.RiskSignal{
			Condition:             models.ConditionWet,
			CurrentProbability:    p,
			HistoricalProbability: p * 0.8,
		}
	}
	return signals
}

func TestAggregateMean(t *testing.T) {
	agg, err := Aggregate(signalsWithProbabilities(10, 20, 30))
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.CurrentAverage != 20 {
		t.Errorf("CurrentAverage = %v, want 20", agg.CurrentAverage)
	}
	if agg.HistoricalAverage != 16 {
		t.Errorf("HistoricalAverage = %v, want 16", agg.HistoricalAverage)
	}
	if agg.CurrentAverage < 0 || agg.CurrentAverage > 100 {
		t.Errorf("CurrentAverage %v outside [0,100]", agg.CurrentAverage)
	}
}

func TestAggregateTierBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    models.RiskTier
	}{
		{"just under moderate", 19.999, models.TierLow},
		{"moderate floor inclusive", 20.0, models.TierModerate},
		{"just under high", 39.999, models.TierModerate},
		{"high floor inclusive", 40.0, models.TierHigh},
		{"zero", 0, models.TierLow},
		{"maximum", 100, models.TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := Aggregate(signalsWithProbabilities(tt.current))
			if err != nil {
				t.Fatalf("Aggregate: %v", err)
			}
			if math.Abs(agg.CurrentAverage-tt.current) > 1e-9 {
				t.Errorf("CurrentAverage = %v, want %v", agg.CurrentAverage, tt.current)
			}
			if agg.Tier != tt.want {
				t.Errorf("Tier = %v, want %v", agg.Tier, tt.want)
			}
		})
	}
}

func TestAggregateEmptySelection(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("Aggregate(nil) error = %v, want ErrEmptySelection", err)
	}
}
