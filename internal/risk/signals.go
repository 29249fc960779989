package risk

import (
	"fmt"

	"paradecast/internal/models"
)

// historicalEstimateFactor scales a live probability into its historical
// baseline companion. The statistics service returns no independent
// historical probability per condition, so the baseline is estimated as a
// fixed fraction of the current value.
const historicalEstimateFactor = 0.8

// ResolveSignals produces one RiskSignal per requested condition, in request
// order. A condition covered by the live payload (hot -> heat, wet ->
// precipitation, cold -> cold) uses the live probability and status message;
// every other condition falls back to the static reference table. No
// condition is ever dropped.
func ResolveSignals(conditions []models.Condition, payload *models.ExternalRiskPayload) ([]models.RiskSignal, error) {
	signals := make([]models.RiskSignal, 0, len(conditions))
	for _, c := range conditions {
		if !KnownCondition(c) {
			return nil, fmt.Errorf("resolve %q: %w", c, ErrInvalidCondition)
		}

		if live := liveRisk(c, payload); live != nil {
			signals = append(signals, models.RiskSignal{
				Condition:             c,
				CurrentProbability:    live.Probability,
				HistoricalProbability: live.Probability * historicalEstimateFactor,
				StatusMessage:         live.StatusMessage,
				Source:                models.SourceLive,
			})
			continue
		}

		ref := referenceSignals[c]
		ref.Source = models.SourceFallback
		signals = append(signals, ref)
	}
	return signals, nil
}

// liveRisk returns the payload entry covering the condition, or nil when the
// payload is absent or covers a different condition class.
func liveRisk(c models.Condition, payload *models.ExternalRiskPayload) *models.ConditionRisk {
	if payload == nil {
		return nil
	}
	switch c {
	case models.ConditionHot:
		return payload.Heat
	case models.ConditionWet:
		return payload.Precipitation
	case models.ConditionCold:
		return payload.Cold
	default:
		return nil
	}
}
