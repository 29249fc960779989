// Package climate derives per-condition risk probabilities and long-term
// trend classifications from historical daily records. Probabilities use
// fixed adverse thresholds (30C heat, 10C cold, 5mm precipitation) with the
// extreme percentile (P90/P10) carried as a reference value in messages.
package climate

import (
	"fmt"
	"math"
	"sort"

	"paradecast/internal/models"
)

// Fixed adverse thresholds for probability calculation.
const (
	HeatThresholdC   = 30.0
	ColdThresholdC   = 10.0
	PrecipThresholdM = 5.0
)

// Risk level bands over the adverse-day percentage.
const (
	LevelHigh     = "HIGH"
	LevelModerate = "MODERATE"
	LevelLow      = "LOW"
	LevelMinimal  = "MINIMAL"
	LevelUnknown  = "UNKNOWN"
)

// FilterMonth keeps only records from the target month.
func FilterMonth(records []models.DailyRecord, month int) []models.DailyRecord {
	var out []models.DailyRecord
	for _, r := range records {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out
}

// Percentile computes the p-th percentile of values using linear
// interpolation between closest ranks, matching the statistics service's
// published methodology.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// HeatRisk is the probability of a day exceeding the fixed heat threshold,
// with the P90 extreme-heat temperature as reference.
func HeatRisk(records []models.DailyRecord) models.ConditionRisk {
	values := tempMaxValues(records)
	if len(values) == 0 {
		return unknownRisk("No temperature data available")
	}

	p90 := Percentile(values, 90)
	adverse := 0
	for _, v := range values {
		if v > HeatThresholdC {
			adverse++
		}
	}
	probability := round1(float64(adverse) / float64(len(values)) * 100)
	level := classifyLevel(probability)

	return models.ConditionRisk{
		Probability:       probability,
		Threshold:         HeatThresholdC,
		StatusMessage:     fmt.Sprintf("%s RISK of heat (>%.1fC). Extreme heat threshold: %.1fC (P90).", level, HeatThresholdC, p90),
		Level:             level,
		TotalObservations: len(values),
		AdverseCount:      adverse,
	}
}

// ColdRisk is the probability of a day's maximum staying below the fixed
// cold threshold, with the P10 extreme-cold temperature as reference.
func ColdRisk(records []models.DailyRecord) models.ConditionRisk {
	values := tempMaxValues(records)
	if len(values) == 0 {
		return unknownRisk("No temperature data available")
	}

	p10 := Percentile(values, 10)
	adverse := 0
	for _, v := range values {
		if v < ColdThresholdC {
			adverse++
		}
	}
	probability := round1(float64(adverse) / float64(len(values)) * 100)
	level := classifyLevel(probability)

	return models.ConditionRisk{
		Probability:       probability,
		Threshold:         ColdThresholdC,
		StatusMessage:     fmt.Sprintf("%s RISK of cold (<%.1fC). Extreme cold threshold: %.1fC (P10).", level, ColdThresholdC, p10),
		Level:             level,
		TotalObservations: len(values),
		AdverseCount:      adverse,
	}
}

// PrecipRisk is the probability of a day exceeding the fixed precipitation
// threshold, with the P90 extreme-rain amount as reference.
func PrecipRisk(records []models.DailyRecord) models.ConditionRisk {
	var values []float64
	for _, r := range records {
		if r.Precip >= 0 {
			values = append(values, r.Precip)
		}
	}
	if len(values) == 0 {
		return unknownRisk("No precipitation data available")
	}

	p90 := Percentile(values, 90)
	adverse := 0
	for _, v := range values {
		if v > PrecipThresholdM {
			adverse++
		}
	}
	probability := round1(float64(adverse) / float64(len(values)) * 100)
	level := classifyLevel(probability)

	return models.ConditionRisk{
		Probability:       probability,
		Threshold:         PrecipThresholdM,
		StatusMessage:     fmt.Sprintf("%s RISK of precipitation (>%.1fmm). Extreme precipitation threshold: %.1fmm (P90).", level, PrecipThresholdM, p90),
		Level:             level,
		TotalObservations: len(values),
		AdverseCount:      adverse,
	}
}

// RiskFor computes the risk class covering the given condition, or nil for
// conditions the statistics service has no class for.
func RiskFor(condition models.Condition, records []models.DailyRecord) *models.ConditionRisk {
	var risk models.ConditionRisk
	switch condition {
	case models.ConditionHot:
		risk = HeatRisk(records)
	case models.ConditionCold:
		risk = ColdRisk(records)
	case models.ConditionWet:
		risk = PrecipRisk(records)
	default:
		return nil
	}
	return &risk
}

// PayloadFor builds the engine payload covering the first requested
// condition with a statistics class. At most one class is populated.
func PayloadFor(conditions []models.Condition, records []models.DailyRecord) *models.ExternalRiskPayload {
	for _, c := range conditions {
		risk := RiskFor(c, records)
		if risk == nil {
			continue
		}
		payload := &models.ExternalRiskPayload{}
		switch c {
		case models.ConditionHot:
			payload.Heat = risk
		case models.ConditionCold:
			payload.Cold = risk
		case models.ConditionWet:
			payload.Precipitation = risk
		}
		return payload
	}
	return nil
}

func tempMaxValues(records []models.DailyRecord) []float64 {
	var values []float64
	for _, r := range records {
		if r.TempMax > -100 {
			values = append(values, r.TempMax)
		}
	}
	return values
}

func classifyLevel(probability float64) string {
	switch {
	case probability >= 20:
		return LevelHigh
	case probability >= 10:
		return LevelModerate
	case probability >= 5:
		return LevelLow
	default:
		return LevelMinimal
	}
}

func unknownRisk(message string) models.ConditionRisk {
	return models.ConditionRisk{StatusMessage: message, Level: LevelUnknown}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
