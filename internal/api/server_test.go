package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"paradecast/internal/advisor"
	"paradecast/internal/models"
	"paradecast/internal/store"
)

type stubSource struct {
	records  []models.DailyRecord
	fallback bool
	err      error
	calls    int
}

func (s *stubSource) FetchDaily(ctx context.Context, lat, lon float64, startYear, endYear int) ([]models.DailyRecord, bool, error) {
	s.calls++
	return s.records, s.fallback, s.err
}

type stubAdvisor struct {
	planB *models.PlanB
	err   error
	calls int
}

func (a *stubAdvisor) PlanB(ctx context.Context, req advisor.Request) (*models.PlanB, error) {
	a.calls++
	return a.planB, a.err
}

func newTestServer(t *testing.T, source DataSource, adv PlanBAdvisor) *Server {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewServer(source, adv, st, "0", time.Hour)
}

// julyRecords builds a month of records where half the days breach the cold
// threshold and half breach the precipitation threshold.
func julyRecords() []models.DailyRecord {
	var records []models.DailyRecord
	for i := 0; i < 20; i++ {
		r := models.DailyRecord{Year: 2005 + i, Month: 7, TempMax: 15, TempMin: 12, TempAvg: 13, Precip: 0}
		if i%2 == 0 {
			r.TempMin = 5
			r.Precip = 12
		}
		records = append(records, r)
	}
	return records
}

func postRisk(t *testing.T, handler http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/risk", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRiskAssessmentWithAIAlternatives(t *testing.T) {
	source := &stubSource{records: julyRecords()}
	adv := &stubAdvisor{planB: &models.PlanB{
		Provenance:   "stub-model",
		Alternatives: []models.Alternative{{Title: "Harbour museum"}},
	}}
	srv := newTestServer(t, source, adv)

	rec := postRisk(t, srv.Handler(), RiskRequest{
		Latitude:   -34.9,
		Longitude:  -56.16,
		EventDate:  "2026-07-10",
		Conditions: []string{"cold"},
		Activity:   "sailing",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp RiskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false")
	}
	if resp.RequestID == "" {
		t.Error("missing request id")
	}
	if resp.IsFallback {
		t.Error("IsFallback = true for live data")
	}

	a := resp.Assessment
	if len(a.Signals) != 1 || a.Signals[0].Source != models.SourceLive {
		t.Fatalf("signals = %+v, want one live signal", a.Signals)
	}
	// Half the July days are below the cold threshold.
	if a.Signals[0].CurrentProbability != 50 {
		t.Errorf("current probability = %v, want 50", a.Signals[0].CurrentProbability)
	}
	if a.Signals[0].HistoricalProbability != 40 {
		t.Errorf("historical probability = %v, want 40", a.Signals[0].HistoricalProbability)
	}
	if a.Verdict == nil || a.Verdict.Favorable {
		t.Fatalf("verdict = %+v, want unfavorable", a.Verdict)
	}
	if adv.calls != 1 {
		t.Errorf("advisor calls = %d, want 1", adv.calls)
	}
	if a.PlanB == nil || a.PlanB.Provenance != "stub-model" {
		t.Errorf("plan B = %+v, want AI provenance", a.PlanB)
	}
	if resp.Trend == nil {
		t.Error("missing trend analysis")
	}
}

func TestRiskAdvisorFailureKeepsCatalog(t *testing.T) {
	source := &stubSource{records: julyRecords()}
	adv := &stubAdvisor{err: errors.New("model unavailable")}
	srv := newTestServer(t, source, adv)

	rec := postRisk(t, srv.Handler(), RiskRequest{
		Latitude:   -34.9,
		Longitude:  -56.16,
		EventDate:  "2026-07-10",
		Conditions: []string{"cold"},
		Activity:   "sailing",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp RiskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Assessment.PlanB == nil || resp.Assessment.PlanB.Provenance != "catalog" {
		t.Errorf("plan B = %+v, want catalog fallback", resp.Assessment.PlanB)
	}
}

func TestRiskNoActivityGetsSuggestions(t *testing.T) {
	source := &stubSource{records: julyRecords()}
	srv := newTestServer(t, source, nil)

	rec := postRisk(t, srv.Handler(), RiskRequest{
		Latitude:   -34.9,
		Longitude:  -56.16,
		EventDate:  "2026-07-10",
		Conditions: []string{"wet"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp RiskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Assessment.Verdict != nil {
		t.Errorf("verdict = %+v, want nil without an activity", resp.Assessment.Verdict)
	}
	if len(resp.Assessment.Suggestions) == 0 {
		t.Error("no suggestions returned")
	}
}

func TestRiskRejectsBadRequests(t *testing.T) {
	srv := newTestServer(t, &stubSource{records: julyRecords()}, nil)
	handler := srv.Handler()

	tests := []struct {
		name string
		req  RiskRequest
	}{
		{"latitude out of range", RiskRequest{Latitude: 100, Longitude: 0, EventDate: "2026-07-10", Conditions: []string{"wet"}}},
		{"longitude out of range", RiskRequest{Latitude: 0, Longitude: -200, EventDate: "2026-07-10", Conditions: []string{"wet"}}},
		{"missing date", RiskRequest{Latitude: 0, Longitude: 0, Conditions: []string{"wet"}}},
		{"no conditions", RiskRequest{Latitude: 0, Longitude: 0, EventDate: "2026-07-10"}},
		{"unknown condition", RiskRequest{Latitude: 0, Longitude: 0, EventDate: "2026-07-10", Conditions: []string{"snowy"}}},
		{"bad date", RiskRequest{Latitude: 0, Longitude: 0, EventDate: "2026-13-45", Conditions: []string{"wet"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postRisk(t, handler, tt.req); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRiskInvalidJSONAndMethod(t *testing.T) {
	srv := newTestServer(t, &stubSource{}, nil)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/risk", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/risk", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}

func TestRiskAcceptsDayFirstDates(t *testing.T) {
	srv := newTestServer(t, &stubSource{records: julyRecords()}, nil)

	rec := postRisk(t, srv.Handler(), RiskRequest{
		Latitude:   -34.9,
		Longitude:  -56.16,
		EventDate:  "10/07/2026",
		Conditions: []string{"wet"},
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestRiskUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &stubSource{err: errors.New("upstream down")}, nil)

	rec := postRisk(t, srv.Handler(), RiskRequest{
		Latitude:   -34.9,
		Longitude:  -56.16,
		EventDate:  "2026-07-10",
		Conditions: []string{"wet"},
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestDatasetFetchedOncePerCoordinate(t *testing.T) {
	source := &stubSource{records: julyRecords()}
	srv := newTestServer(t, source, nil)
	handler := srv.Handler()

	req := RiskRequest{Latitude: -34.9, Longitude: -56.16, EventDate: "2026-07-10", Conditions: []string{"wet"}}
	for i := 0; i < 2; i++ {
		if rec := postRisk(t, handler, req); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1 (second request should hit the cache)", source.calls)
	}
}

func TestAssessmentsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubSource{records: julyRecords()}, nil)
	handler := srv.Handler()

	if rec := postRisk(t, handler, RiskRequest{
		Latitude:   -34.9,
		Longitude:  -56.16,
		EventDate:  "2026-07-10",
		Conditions: []string{"cold"},
		Activity:   "sailing",
	}); rec.Code != http.StatusOK {
		t.Fatalf("seed request status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/assessments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var summaries []assessmentSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if s.Tier == "" || s.EventDate != "2026-07-10" || s.Activity != "sailing" {
		t.Errorf("summary = %+v", s)
	}
	if s.Favorable == nil || *s.Favorable {
		t.Errorf("Favorable = %v, want false", s.Favorable)
	}
}

func TestAssessmentsLimitValidation(t *testing.T) {
	srv := newTestServer(t, &stubSource{}, nil)
	handler := srv.Handler()

	for _, raw := range []string{"0", "-5", "1000", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/assessments?limit="+raw, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q status = %d, want 400", raw, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubSource{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/risk", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubSource{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
