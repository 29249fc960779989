package risk

import "paradecast/internal/models"

// Tier band boundaries, inclusive on the lower bound.
const (
	tierModerateFloor = 20.0
	tierHighFloor     = 40.0
)

// Aggregate averages the signal probabilities into a single current and
// historical score and classifies the current score into a tier.
func Aggregate(signals []models.RiskSignal) (models.AggregateRisk, error) {
	if len(signals) == 0 {
		return models.AggregateRisk{}, ErrEmptySelection
	}

	var current, historical float64
	for _, s := range signals {
		current += s.CurrentProbability
		historical += s.HistoricalProbability
	}
	current /= float64(len(signals))
	historical /= float64(len(signals))

	return models.AggregateRisk{
		CurrentAverage:    current,
		HistoricalAverage: historical,
		Tier:              classifyTier(current),
	}, nil
}

func classifyTier(currentAverage float64) models.RiskTier {
	switch {
	case currentAverage >= tierHighFloor:
		return models.TierHigh
	case currentAverage >= tierModerateFloor:
		return models.TierModerate
	default:
		return models.TierLow
	}
}
