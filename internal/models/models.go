package models

import "time"

// Condition is an adverse weather condition a user can select for an event.
type Condition string

const (
	ConditionWet           Condition = "wet"
	ConditionHot           Condition = "hot"
	ConditionCold          Condition = "cold"
	ConditionWindy         Condition = "windy"
	ConditionUncomfortable Condition = "uncomfortable"
	ConditionUV            Condition = "uv"
)

// Activity is an outdoor activity the user plans for the event date.
// An empty value means no activity was selected.
type Activity string

const (
	ActivityNone    Activity = ""
	ActivitySurf    Activity = "surf"
	ActivityBeach   Activity = "beach"
	ActivityRun     Activity = "run"
	ActivityHike    Activity = "hike"
	ActivitySailing Activity = "sailing"
	ActivityPicnic  Activity = "picnic"
)

// SignalSource records whether a signal came from live statistics or the
// static reference table.
type SignalSource string

const (
	SourceLive     SignalSource = "live"
	SourceFallback SignalSource = "fallback"
)

// RiskSignal is one condition's probability pair after source resolution.
type RiskSignal struct {
	Condition             Condition    `json:"condition"`
	CurrentProbability    float64      `json:"current_probability"`
	HistoricalProbability float64      `json:"historical_probability"`
	StatusMessage         string       `json:"status_message"`
	Source                SignalSource `json:"source"`
}

// RiskTier is the three-level classification of aggregate risk.
type RiskTier string

const (
	TierLow      RiskTier = "Low"
	TierModerate RiskTier = "Moderate"
	TierHigh     RiskTier = "High"
)

// AggregateRisk combines the selected signals into comparable scores.
type AggregateRisk struct {
	CurrentAverage    float64  `json:"current_average"`
	HistoricalAverage float64  `json:"historical_average"`
	Tier              RiskTier `json:"tier"`
}

// CompatibilityVerdict says whether the chosen activity is still advisable.
// TriggeringCondition is empty when no disliked condition matched.
type CompatibilityVerdict struct {
	Activity            Activity  `json:"activity"`
	Favorable           bool      `json:"favorable"`
	TriggeringCondition Condition `json:"triggering_condition,omitempty"`
	Message             string    `json:"message"`
}

// Alternative is a single Plan B activity suggestion.
type Alternative struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Kind          string `json:"kind"` // "indoor", "outdoor" or "mixed"
	Reasoning     string `json:"reasoning"`
	Tips          string `json:"tips,omitempty"`
	Location      string `json:"location,omitempty"`
	DurationLabel string `json:"duration,omitempty"`
	CostTier      string `json:"cost,omitempty"` // "Free", "Low", "Medium", "High"
}

// PlanB is a set of alternatives with its provenance label, either the AI
// collaborator's model name or a catalog marker.
type PlanB struct {
	Provenance   string        `json:"provenance"`
	Alternatives []Alternative `json:"alternatives"`
}

// Suggestion is a lightweight activity hint shown when no activity was
// selected.
type Suggestion struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// ClimateDelta compares current risk against the historical baseline.
type ClimateDelta struct {
	Direction string  `json:"direction"` // "increase" or "stable"
	Magnitude float64 `json:"magnitude"`
}

// ConditionRisk is one condition class's analysis from the statistics
// service: probability of exceeding a fixed threshold, with the extreme
// percentile threshold carried for reference.
type ConditionRisk struct {
	Probability       float64 `json:"probability"`
	Threshold         float64 `json:"risk_threshold"`
	StatusMessage     string  `json:"status_message"`
	Level             string  `json:"risk_level"`
	TotalObservations int     `json:"total_observations"`
	AdverseCount      int     `json:"adverse_count"`
}

// ExternalRiskPayload is the statistics service result handed to the
// engine. At most one class is populated per request.
type ExternalRiskPayload struct {
	Heat          *ConditionRisk `json:"heat,omitempty"`
	Precipitation *ConditionRisk `json:"precipitation,omitempty"`
	Cold          *ConditionRisk `json:"cold,omitempty"`
}

// Assessment is the full evaluation result for one request. Verdict and
// Suggestions are mutually exclusive: Suggestions is populated only when no
// activity was selected, and PlanB only when the verdict is unfavorable.
type Assessment struct {
	Signals      []RiskSignal          `json:"signals"`
	Aggregate    AggregateRisk         `json:"aggregate"`
	Verdict      *CompatibilityVerdict `json:"verdict,omitempty"`
	Suggestions  []Suggestion          `json:"suggestions,omitempty"`
	PlanB        *PlanB                `json:"plan_b,omitempty"`
	ClimateDelta ClimateDelta          `json:"climate_delta"`
}

// DailyRecord is one day of historical climate data from the statistics
// source (NASA POWER or the embedded fallback dataset).
type DailyRecord struct {
	Year    int
	Month   int
	TempMax float64
	TempMin float64
	TempAvg float64
	Precip  float64
}

// TrendAnalysis is the long-term warming/cooling classification for the
// event month, comparing the first five years against the last five.
type TrendAnalysis struct {
	Status      string  `json:"trend_status"`
	EarlyMean   float64 `json:"early_period_mean"`
	RecentMean  float64 `json:"recent_period_mean"`
	Difference  float64 `json:"difference"`
	EarlyYears  []int   `json:"early_years"`
	RecentYears []int   `json:"recent_years"`
	Message     string  `json:"message"`
	DataPeriod  string  `json:"data_period"`
}

// AssessmentRecord is the persisted log row for one evaluation.
type AssessmentRecord struct {
	ID                  string
	CreatedAt           time.Time
	Latitude            float64
	Longitude           float64
	EventDate           time.Time
	Conditions          []Condition
	Activity            Activity
	Tier                RiskTier
	CurrentAverage      float64
	HistoricalAverage   float64
	Favorable           *bool
	TriggeringCondition Condition
	PlanBProvenance     string
	IsFallback          bool
}
