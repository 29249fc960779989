// Package store persists fetched climate datasets and completed assessments
// in SQLite. Datasets are cached per coordinate and year range so repeat
// requests for the same location skip the upstream API.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"paradecast/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetCachedDataset returns the stored records for the coordinate and year
// range if fetched within maxAge, or nil when there is no fresh entry.
// The second return reports whether the cached entry came from the
// embedded fallback dataset.
func (s *Store) GetCachedDataset(lat, lon float64, startYear, endYear int, maxAge time.Duration) ([]models.DailyRecord, bool, error) {
	row := s.db.QueryRow(`
		SELECT records_json, is_fallback, fetched_at
		FROM climate_datasets
		WHERE latitude = ? AND longitude = ? AND start_year = ? AND end_year = ?
	`, lat, lon, startYear, endYear)

	var recordsJSON string
	var isFallback bool
	var fetchedAt time.Time
	err := row.Scan(&recordsJSON, &isFallback, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if time.Since(fetchedAt) > maxAge {
		return nil, false, nil
	}

	var records []models.DailyRecord
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached dataset: %w", err)
	}
	return records, isFallback, nil
}

// PutDataset stores or refreshes the records for a coordinate and year range.
func (s *Store) PutDataset(lat, lon float64, startYear, endYear int, isFallback bool, records []models.DailyRecord) error {
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO climate_datasets (latitude, longitude, start_year, end_year, is_fallback, records_json, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(latitude, longitude, start_year, end_year) DO UPDATE SET
			is_fallback = excluded.is_fallback,
			records_json = excluded.records_json,
			fetched_at = excluded.fetched_at
	`, lat, lon, startYear, endYear, isFallback, string(recordsJSON), time.Now().UTC())
	return err
}

func (s *Store) InsertAssessment(rec models.AssessmentRecord) error {
	conditions := make([]string, len(rec.Conditions))
	for i, c := range rec.Conditions {
		conditions[i] = string(c)
	}

	_, err := s.db.Exec(`
		INSERT INTO assessments (id, latitude, longitude, event_date, conditions, activity, tier,
			current_avg, historical_avg, favorable, triggering_condition, plan_b_provenance, is_fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Latitude, rec.Longitude, rec.EventDate.Format("2006-01-02"),
		strings.Join(conditions, ","), string(rec.Activity), string(rec.Tier),
		rec.CurrentAverage, rec.HistoricalAverage, rec.Favorable,
		string(rec.TriggeringCondition), rec.PlanBProvenance, rec.IsFallback, rec.CreatedAt)
	return err
}

// RecentAssessments returns the newest assessments first, up to limit.
func (s *Store) RecentAssessments(limit int) ([]models.AssessmentRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, latitude, longitude, event_date, conditions, activity, tier,
			current_avg, historical_avg, favorable, triggering_condition, plan_b_provenance, is_fallback, created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AssessmentRecord
	for rows.Next() {
		var rec models.AssessmentRecord
		var eventDate, conditions, activity, tier, triggering string
		if err := rows.Scan(&rec.ID, &rec.Latitude, &rec.Longitude, &eventDate, &conditions, &activity, &tier,
			&rec.CurrentAverage, &rec.HistoricalAverage, &rec.Favorable, &triggering,
			&rec.PlanBProvenance, &rec.IsFallback, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.EventDate, err = time.Parse("2006-01-02", eventDate)
		if err != nil {
			return nil, fmt.Errorf("parse event date %q: %w", eventDate, err)
		}
		for _, c := range strings.Split(conditions, ",") {
			if c != "" {
				rec.Conditions = append(rec.Conditions, models.Condition(c))
			}
		}
		rec.Activity = models.Activity(activity)
		rec.Tier = models.RiskTier(tier)
		rec.TriggeringCondition = models.Condition(triggering)
		records = append(records, rec)
	}
	return records, rows.Err()
}
