package risk

import (
	"errors"
	"testing"

	"paradecast/internal/models"
)

func TestResolveSignalsFallback(t *testing.T) {
	signals, err := ResolveSignals([]models.Condition{models.ConditionWet}, nil)
	if err != nil {
		t.Fatalf("ResolveSignals: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("len(signals) = %d, want 1", len(signals))
	}
	s := signals[0]
	if s.CurrentProbability != 18.2 {
		t.Errorf("CurrentProbability = %v, want 18.2", s.CurrentProbability)
	}
	if s.HistoricalProbability != 11.5 {
		t.Errorf("HistoricalProbability = %v, want 11.5", s.HistoricalProbability)
	}
	if s.Source != models.SourceFallback {
		t.Errorf("Source = %v, want fallback", s.Source)
	}
	if s.StatusMessage == "" {
		t.Error("StatusMessage is empty")
	}
}

func TestResolveSignalsLive(t *testing.T) {
	payload := &models.ExternalRiskPayload{
		Heat: &models.ConditionRisk{Probability: 30, StatusMessage: "HIGH RISK of heat"},
	}
	signals, err := ResolveSignals([]models.Condition{models.ConditionHot}, payload)
	if err != nil {
		t.Fatalf("ResolveSignals: %v", err)
	}
	s := signals[0]
	if s.Source != models.SourceLive {
		t.Errorf("Source = %v, want live", s.Source)
	}
	if s.CurrentProbability != 30 {
		t.Errorf("CurrentProbability = %v, want 30", s.CurrentProbability)
	}
	if s.HistoricalProbability != 24 {
		t.Errorf("HistoricalProbability = %v, want 24 (30 * 0.8)", s.HistoricalProbability)
	}
	if s.StatusMessage != "HIGH RISK of heat" {
		t.Errorf("StatusMessage = %q, want verbatim payload message", s.StatusMessage)
	}
}

func TestResolveSignalsPayloadDoesNotCoverOtherConditions(t *testing.T) {
	payload := &models.ExternalRiskPayload{
		Heat: &models.ConditionRisk{Probability: 30, StatusMessage: "heat"},
	}
	signals, err := ResolveSignals([]models.Condition{models.ConditionWindy, models.ConditionHot}, payload)
	if err != nil {
		t.Fatalf("ResolveSignals: %v", err)
	}
	if signals[0].Source != models.SourceFallback {
		t.Errorf("windy Source = %v, want fallback", signals[0].Source)
	}
	if signals[1].Source != models.SourceLive {
		t.Errorf("hot Source = %v, want live", signals[1].Source)
	}
}

func TestResolveSignalsPreservesOrder(t *testing.T) {
	conditions := []models.Condition{
		models.ConditionUV,
		models.ConditionWet,
		models.ConditionCold,
	}
	signals, err := ResolveSignals(conditions, nil)
	if err != nil {
		t.Fatalf("ResolveSignals: %v", err)
	}
	if len(signals) != len(conditions) {
		t.Fatalf("len(signals) = %d, want %d", len(signals), len(conditions))
	}
	for i, c := range conditions {
		if signals[i].Condition != c {
			t.Errorf("signals[%d].Condition = %v, want %v", i, signals[i].Condition, c)
		}
	}
}

func TestResolveSignalsInvalidCondition(t *testing.T) {
	_, err := ResolveSignals([]models.Condition{"tornado"}, nil)
	if !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("error = %v, want ErrInvalidCondition", err)
	}
}
