// Package risk is the assessment engine: it normalizes live and fallback
// probability signals onto one scale, aggregates them into a risk tier,
// judges activity compatibility and resolves Plan B alternatives. All of it
// is pure request-scoped computation; fetching statistics and calling the
// AI collaborator happen before the engine runs.
package risk

import "paradecast/internal/models"

// AssessmentInput carries everything one evaluation needs. Payload and
// ExternalPlanB are optional pre-computed collaborator results; their
// absence triggers the static fallback paths, never an error.
type AssessmentInput struct {
	Conditions    []models.Condition
	Activity      models.Activity
	Payload       *models.ExternalRiskPayload
	ExternalPlanB *models.PlanB
}

// Assess runs the full pipeline: signal resolution, aggregation, activity
// compatibility, Plan B or suggestions, and the climate-delta comparison.
func Assess(in AssessmentInput) (*models.Assessment, error) {
	if len(in.Conditions) == 0 {
		return nil, ErrEmptySelection
	}

	signals, err := ResolveSignals(in.Conditions, in.Payload)
	if err != nil {
		return nil, err
	}

	aggregate, err := Aggregate(signals)
	if err != nil {
		return nil, err
	}

	verdict, err := EvaluateActivity(in.Activity, in.Conditions, signals)
	if err != nil {
		return nil, err
	}

	result := &models.Assessment{
		Signals:   signals,
		Aggregate: aggregate,
		Verdict:   verdict,
	}

	if verdict == nil {
		result.Suggestions = Suggestions(in.Conditions)
	} else if !verdict.Favorable {
		planB := ResolveAlternatives(in.Activity, in.Conditions, in.ExternalPlanB)
		result.PlanB = &planB
	}

	delta, err := CompareClimate(aggregate)
	if err != nil {
		return nil, err
	}
	result.ClimateDelta = delta

	return result, nil
}
