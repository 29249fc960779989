package risk

import (
	"errors"
	"math"
	"testing"

	"paradecast/internal/models"
)

func TestCompareClimate(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		historical    float64
		wantDirection string
		wantMagnitude float64
	}{
		{"increase", 30, 24, "increase", 6.0},
		{"increase rounds to one decimal", 18.2, 11.54, "increase", 6.7},
		{"equal is stable", 20, 20, "stable", 0},
		{"decrease is stable", 12.7, 14.3, "stable", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareClimate(models.AggregateRisk{
				CurrentAverage:    tt.current,
				HistoricalAverage: tt.historical,
			})
			if err != nil {
				t.Fatalf("CompareClimate: %v", err)
			}
			if got.Direction != tt.wantDirection {
				t.Errorf("Direction = %q, want %q", got.Direction, tt.wantDirection)
			}
			if got.Magnitude != tt.wantMagnitude {
				t.Errorf("Magnitude = %v, want %v", got.Magnitude, tt.wantMagnitude)
			}
		})
	}
}

func TestCompareClimateRejectsNaN(t *testing.T) {
	tests := []struct {
		name       string
		current    float64
		historical float64
	}{
		{"NaN current", math.NaN(), 10},
		{"NaN historical", 10, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompareClimate(models.AggregateRisk{
				CurrentAverage:    tt.current,
				HistoricalAverage: tt.historical,
			})
			if !errors.Is(err, ErrInvalidAggregate) {
				t.Fatalf("error = %v, want ErrInvalidAggregate", err)
			}
		})
	}
}
