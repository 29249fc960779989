package risk

import "paradecast/internal/models"

// suggestionRule matches against the requested condition set: every
// condition in absent must be missing and every condition in present must be
// selected for the suggestion to fire.
type suggestionRule struct {
	absent     []models.Condition
	present    []models.Condition
	suggestion models.Suggestion
}

var suggestionRules = []suggestionRule{
	{
		absent:     []models.Condition{models.ConditionWet, models.ConditionCold, models.ConditionWindy},
		suggestion: models.Suggestion{Icon: "🧺", Label: "Picnic weather"},
	},
	{
		absent:     []models.Condition{models.ConditionCold, models.ConditionWindy},
		suggestion: models.Suggestion{Icon: "🏖️", Label: "Beach day"},
	},
	{
		absent:     []models.Condition{models.ConditionHot, models.ConditionWet},
		suggestion: models.Suggestion{Icon: "🥾", Label: "Good hiking"},
	},
	{
		absent:     []models.Condition{models.ConditionHot, models.ConditionUncomfortable},
		suggestion: models.Suggestion{Icon: "🏃", Label: "Go for a run"},
	},
	{
		present:    []models.Condition{models.ConditionWindy},
		absent:     []models.Condition{models.ConditionWet, models.ConditionCold},
		suggestion: models.Suggestion{Icon: "⛵", Label: "Sailing breeze"},
	},
}

var stayHomeSuggestion = models.Suggestion{Icon: "🏠", Label: "Better to stay in"}

// Suggestions maps the requested condition set to activity hints for the
// no-activity path. Falls back to a single stay-home hint when no rule
// matches.
func Suggestions(conditions []models.Condition) []models.Suggestion {
	selected := make(map[models.Condition]bool, len(conditions))
	for _, c := range conditions {
		selected[c] = true
	}

	var out []models.Suggestion
	for _, rule := range suggestionRules {
		if rule.matches(selected) {
			out = append(out, rule.suggestion)
		}
	}
	if len(out) == 0 {
		return []models.Suggestion{stayHomeSuggestion}
	}
	return out
}

func (r suggestionRule) matches(selected map[models.Condition]bool) bool {
	for _, c := range r.absent {
		if selected[c] {
			return false
		}
	}
	for _, c := range r.present {
		if !selected[c] {
			return false
		}
	}
	return true
}
