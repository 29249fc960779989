package risk

import "paradecast/internal/models"

// referenceSignals holds the static probability pair and status message used
// for a condition when the statistics service did not cover it. Values are
// long-run Montevideo climatology baselines.
var referenceSignals = map[models.Condition]models.RiskSignal{
	models.ConditionWet: {
		Condition:             models.ConditionWet,
		CurrentProbability:    18.2,
		HistoricalProbability: 11.5,
		StatusMessage:         "Noticeable chance of significant rain. Pack an umbrella and check for covered venues.",
	},
	models.ConditionHot: {
		Condition:             models.ConditionHot,
		CurrentProbability:    22.4,
		HistoricalProbability: 17.9,
		StatusMessage:         "Hot days are common in this period. Plan for shade and hydration.",
	},
	models.ConditionCold: {
		Condition:             models.ConditionCold,
		CurrentProbability:    12.7,
		HistoricalProbability: 14.3,
		StatusMessage:         "Some chance of a cold snap. A warm layer should be enough.",
	},
	models.ConditionWindy: {
		Condition:             models.ConditionWindy,
		CurrentProbability:    16.5,
		HistoricalProbability: 15.1,
		StatusMessage:         "Gusty conditions are possible. Secure anything lightweight.",
	},
	models.ConditionUncomfortable: {
		Condition:             models.ConditionUncomfortable,
		CurrentProbability:    21.3,
		HistoricalProbability: 18.8,
		StatusMessage:         "Muggy, uncomfortable conditions show up regularly in this period.",
	},
	models.ConditionUV: {
		Condition:             models.ConditionUV,
		CurrentProbability:    24.6,
		HistoricalProbability: 20.2,
		StatusMessage:         "High UV index is likely. Sunscreen and a hat are strongly advised.",
	},
}

// conditionDescriptions gives the human wording used in verdict messages.
var conditionDescriptions = map[models.Condition]string{
	models.ConditionWet:           "heavy rain",
	models.ConditionHot:           "extreme heat",
	models.ConditionCold:          "cold weather",
	models.ConditionWindy:         "strong wind",
	models.ConditionUncomfortable: "muggy discomfort",
	models.ConditionUV:            "intense UV exposure",
}

// KnownCondition reports whether c is in the closed condition set.
func KnownCondition(c models.Condition) bool {
	_, ok := referenceSignals[c]
	return ok
}
