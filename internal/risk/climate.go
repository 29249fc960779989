package risk

import (
	"math"

	"paradecast/internal/models"
)

// CompareClimate classifies the aggregate's current score against its
// historical baseline. A strictly higher current score is an increase with
// the delta reported to one decimal place; anything else is stable.
func CompareClimate(agg models.AggregateRisk) (models.ClimateDelta, error) {
	if math.IsNaN(agg.CurrentAverage) || math.IsNaN(agg.HistoricalAverage) {
		return models.ClimateDelta{}, ErrInvalidAggregate
	}

	if agg.CurrentAverage > agg.HistoricalAverage {
		return models.ClimateDelta{
			Direction: "increase",
			Magnitude: math.Round((agg.CurrentAverage-agg.HistoricalAverage)*10) / 10,
		}, nil
	}
	return models.ClimateDelta{Direction: "stable"}, nil
}
