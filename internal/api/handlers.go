package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"paradecast/internal/advisor"
	"paradecast/internal/climate"
	"paradecast/internal/metrics"
	"paradecast/internal/models"
	"paradecast/internal/risk"
)

// datasetYears is the length of the historical window fetched for the
// statistics. The window ends at the last complete calendar year.
const datasetYears = 20

type RiskRequest struct {
	Latitude   float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64  `json:"longitude" validate:"gte=-180,lte=180"`
	EventDate  string   `json:"event_date" validate:"required"`
	Conditions []string `json:"conditions" validate:"required,min=1"`
	Activity   string   `json:"activity"`
}

type RiskResponse struct {
	Success    bool                  `json:"success"`
	RequestID  string                `json:"request_id"`
	IsFallback bool                  `json:"is_fallback"`
	Assessment *models.Assessment    `json:"assessment"`
	Trend      *models.TrendAnalysis `json:"trend"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Success: false, Error: msg})
}

// parseEventDate accepts ISO dates and the day-first form used by the
// web client.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse("02/01/2006", s)
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req RiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event_date, want YYYY-MM-DD or DD/MM/YYYY")
		return
	}

	conditions := make([]models.Condition, len(req.Conditions))
	for i, c := range req.Conditions {
		conditions[i] = models.Condition(c)
	}
	activity := models.Activity(req.Activity)

	records, isFallback, err := s.dataset(r, req.Latitude, req.Longitude)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	month := int(eventDate.Month())
	monthRecords := climate.FilterMonth(records, month)
	payload := climate.PayloadFor(conditions, monthRecords)
	trend := climate.Trend(monthRecords)

	assessment, err := risk.Assess(risk.AssessmentInput{
		Conditions: conditions,
		Activity:   activity,
		Payload:    payload,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, risk.ErrInvalidCondition) || errors.Is(err, risk.ErrInvalidActivity) || errors.Is(err, risk.ErrEmptySelection) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	if v := assessment.Verdict; v != nil && !v.Favorable && s.advisor != nil {
		s.generatePlanB(r, assessment, req, conditions, activity, monthRecords, month)
	}

	metrics.AssessmentsTotal.WithLabelValues(string(assessment.Aggregate.Tier)).Inc()

	requestID := uuid.NewString()
	s.recordAssessment(requestID, req, eventDate, conditions, activity, assessment, isFallback)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RiskResponse{
		Success:    true,
		RequestID:  requestID,
		IsFallback: isFallback,
		Assessment: assessment,
		Trend:      &trend,
	})
}

// dataset returns the historical records for a coordinate, preferring the
// cached copy when it is fresh enough.
func (s *Server) dataset(r *http.Request, lat, lon float64) ([]models.DailyRecord, bool, error) {
	endYear := time.Now().Year() - 1
	startYear := endYear - datasetYears + 1

	if s.store != nil {
		cached, isFallback, err := s.store.GetCachedDataset(lat, lon, startYear, endYear, s.cacheTTL)
		if err != nil {
			log.Printf("api: dataset cache lookup: %v", err)
		} else if cached != nil {
			return cached, isFallback, nil
		}
	}

	records, isFallback, err := s.source.FetchDaily(r.Context(), lat, lon, startYear, endYear)
	if err != nil {
		return nil, false, err
	}

	if s.store != nil {
		if err := s.store.PutDataset(lat, lon, startYear, endYear, isFallback, records); err != nil {
			log.Printf("api: cache dataset: %v", err)
		}
	}
	return records, isFallback, nil
}

// generatePlanB replaces the static catalog alternatives with AI-generated
// ones when the advisor succeeds. Failures keep the catalog result.
func (s *Server) generatePlanB(r *http.Request, assessment *models.Assessment, req RiskRequest,
	conditions []models.Condition, activity models.Activity, monthRecords []models.DailyRecord, month int) {

	trigger := assessment.Verdict.TriggeringCondition

	condRisk := climate.RiskFor(trigger, monthRecords)
	if condRisk == nil {
		for _, sig := range assessment.Signals {
			if sig.Condition == trigger {
				condRisk = &models.ConditionRisk{
					Probability:   sig.CurrentProbability,
					StatusMessage: sig.StatusMessage,
					Level:         string(assessment.Aggregate.Tier),
				}
				break
			}
		}
	}
	if condRisk == nil {
		return
	}

	external, err := s.advisor.PlanB(r.Context(), advisor.Request{
		Condition: trigger,
		Activity:  activity,
		Risk:      *condRisk,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Month:     month,
	})
	if err != nil {
		metrics.AdvisorCallsTotal.WithLabelValues("error").Inc()
		log.Printf("api: plan B generation: %v", err)
		return
	}
	metrics.AdvisorCallsTotal.WithLabelValues("ok").Inc()

	planB := risk.ResolveAlternatives(activity, conditions, external)
	assessment.PlanB = &planB
}

func (s *Server) recordAssessment(requestID string, req RiskRequest, eventDate time.Time,
	conditions []models.Condition, activity models.Activity, assessment *models.Assessment, isFallback bool) {

	if s.store == nil {
		return
	}

	rec := models.AssessmentRecord{
		ID:                requestID,
		CreatedAt:         time.Now().UTC(),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		EventDate:         eventDate,
		Conditions:        conditions,
		Activity:          activity,
		Tier:              assessment.Aggregate.Tier,
		CurrentAverage:    assessment.Aggregate.CurrentAverage,
		HistoricalAverage: assessment.Aggregate.HistoricalAverage,
		IsFallback:        isFallback,
	}
	if v := assessment.Verdict; v != nil {
		favorable := v.Favorable
		rec.Favorable = &favorable
		rec.TriggeringCondition = v.TriggeringCondition
	}
	if assessment.PlanB != nil {
		rec.PlanBProvenance = assessment.PlanB.Provenance
	}

	if err := s.store.InsertAssessment(rec); err != nil {
		log.Printf("api: persist assessment: %v", err)
	}
}

type assessmentSummary struct {
	ID                string   `json:"id"`
	CreatedAt         string   `json:"created_at"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	EventDate         string   `json:"event_date"`
	Conditions        []string `json:"conditions"`
	Activity          string   `json:"activity,omitempty"`
	Tier              string   `json:"tier"`
	CurrentAverage    float64  `json:"current_average"`
	HistoricalAverage float64  `json:"historical_average"`
	Favorable         *bool    `json:"favorable,omitempty"`
	IsFallback        bool     `json:"is_fallback"`
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	records, err := s.store.RecentAssessments(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]assessmentSummary, 0, len(records))
	for _, rec := range records {
		conditions := make([]string, len(rec.Conditions))
		for i, c := range rec.Conditions {
			conditions[i] = string(c)
		}
		summaries = append(summaries, assessmentSummary{
			ID:                rec.ID,
			CreatedAt:         rec.CreatedAt.Format(time.RFC3339),
			Latitude:          rec.Latitude,
			Longitude:         rec.Longitude,
			EventDate:         rec.EventDate.Format("2006-01-02"),
			Conditions:        conditions,
			Activity:          string(rec.Activity),
			Tier:              string(rec.Tier),
			CurrentAverage:    rec.CurrentAverage,
			HistoricalAverage: rec.HistoricalAverage,
			Favorable:         rec.Favorable,
			IsFallback:        rec.IsFallback,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
