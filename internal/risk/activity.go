package risk

import (
	"fmt"

	"paradecast/internal/models"
)

// favorableThreshold is the verdict cutoff: an activity stays advisable only
// when the triggering condition's probability is strictly below it. This is
// deliberately stricter than the wording bands below.
const favorableThreshold = 15.0

// Wording bands for the probability phrase in verdict messages.
const (
	wordingLowCeiling      = 10.0
	wordingModerateCeiling = 20.0
)

// sensitivityProfile is an activity's fixed relationship to the condition
// set. Favored conditions are descriptive source data only; the verdict
// consults disliked conditions exclusively.
type sensitivityProfile struct {
	disliked []models.Condition
	favored  []models.Condition
}

var sensitivityProfiles = map[models.Activity]sensitivityProfile{
	models.ActivitySurf: {
		disliked: []models.Condition{models.ConditionCold, models.ConditionWindy},
		favored:  []models.Condition{models.ConditionHot},
	},
	models.ActivityBeach: {
		disliked: []models.Condition{models.ConditionWet, models.ConditionCold, models.ConditionWindy, models.ConditionUncomfortable},
		favored:  []models.Condition{models.ConditionHot},
	},
	models.ActivityRun: {
		disliked: []models.Condition{models.ConditionHot, models.ConditionWet, models.ConditionUncomfortable},
		favored:  []models.Condition{models.ConditionCold},
	},
	models.ActivityHike: {
		disliked: []models.Condition{models.ConditionWet, models.ConditionHot, models.ConditionWindy},
		favored:  []models.Condition{models.ConditionCold},
	},
	models.ActivitySailing: {
		disliked: []models.Condition{models.ConditionWet, models.ConditionCold},
		favored:  []models.Condition{models.ConditionWindy},
	},
	models.ActivityPicnic: {
		disliked: []models.Condition{models.ConditionWet, models.ConditionWindy, models.ConditionHot, models.ConditionUncomfortable},
		favored:  nil,
	},
}

// KnownActivity reports whether a is in the closed activity set.
func KnownActivity(a models.Activity) bool {
	_, ok := sensitivityProfiles[a]
	return ok
}

// EvaluateActivity decides whether the activity is still advisable given the
// requested conditions. Conditions are scanned in request order and the
// first one the activity dislikes becomes the triggering condition, even if
// a later condition carries a higher probability. Returns (nil, nil) when no
// activity was selected.
func EvaluateActivity(activity models.Activity, conditions []models.Condition, signals []models.RiskSignal) (*models.CompatibilityVerdict, error) {
	if activity == models.ActivityNone {
		return nil, nil
	}
	profile, ok := sensitivityProfiles[activity]
	if !ok {
		return nil, fmt.Errorf("evaluate %q: %w", activity, ErrInvalidActivity)
	}

	trigger, found := firstDisliked(profile, conditions)
	if !found {
		return &models.CompatibilityVerdict{
			Activity:  activity,
			Favorable: true,
			Message:   fmt.Sprintf("Conditions look good for your %s. None of the selected risks typically interfere with it.", activity),
		}, nil
	}

	prob := probabilityFor(trigger, signals)
	return &models.CompatibilityVerdict{
		Activity:            activity,
		Favorable:           prob < favorableThreshold,
		TriggeringCondition: trigger,
		Message: fmt.Sprintf("There is a %s (%.1f%%) of %s, which can interfere with your %s.",
			probabilityWording(prob), prob, conditionDescriptions[trigger], activity),
	}, nil
}

func firstDisliked(profile sensitivityProfile, conditions []models.Condition) (models.Condition, bool) {
	for _, c := range conditions {
		for _, d := range profile.disliked {
			if c == d {
				return c, true
			}
		}
	}
	return "", false
}

func probabilityFor(c models.Condition, signals []models.RiskSignal) float64 {
	for _, s := range signals {
		if s.Condition == c {
			return s.CurrentProbability
		}
	}
	return 0
}

func probabilityWording(prob float64) string {
	switch {
	case prob < wordingLowCeiling:
		return "low probability"
	case prob < wordingModerateCeiling:
		return "moderate probability"
	default:
		return "high probability"
	}
}
