// Package power fetches historical daily climate records from the NASA
// POWER API, degrading to an embedded Montevideo reference dataset when the
// API is unreachable. Missing live data is never an error: callers receive
// either live or fallback records, flagged accordingly.
package power

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"paradecast/internal/httputil"
	"paradecast/internal/metrics"
	"paradecast/internal/models"
)

// DefaultBaseURL is the NASA POWER daily point endpoint.
const DefaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// missingValue is NASA's sentinel for absent measurements.
const missingValue = -999.0

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  httputil.NewClient(),
	}
}

type powerResponse struct {
	Messages   []string `json:"messages"`
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// FetchDaily returns daily records for the coordinate over [startYear,
// endYear]. The second return value reports whether the embedded fallback
// dataset was substituted for live data.
func (c *Client) FetchDaily(ctx context.Context, lat, lon float64, startYear, endYear int) ([]models.DailyRecord, bool, error) {
	if lat < -90 || lat > 90 {
		return nil, false, fmt.Errorf("latitude %v outside [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, false, fmt.Errorf("longitude %v outside [-180, 180]", lon)
	}
	if startYear > endYear {
		return nil, false, fmt.Errorf("invalid year range %d-%d", startYear, endYear)
	}

	body, err := c.fetch(ctx, lat, lon, startYear, endYear)
	if err != nil {
		metrics.FallbackTotal.Inc()
		records, ferr := FallbackRecords(startYear, endYear)
		if ferr != nil {
			return nil, false, fmt.Errorf("fetch failed (%v) and fallback unavailable: %w", err, ferr)
		}
		return records, true, nil
	}

	records, err := parseResponse(body)
	if err != nil {
		metrics.FallbackTotal.Inc()
		records, ferr := FallbackRecords(startYear, endYear)
		if ferr != nil {
			return nil, false, fmt.Errorf("parse failed (%v) and fallback unavailable: %w", err, ferr)
		}
		return records, true, nil
	}

	return records, false, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64, startYear, endYear int) ([]byte, error) {
	params := url.Values{}
	params.Set("parameters", "T2M_MAX,T2M_MIN,T2M,PRECTOTCORR")
	params.Set("community", "AG")
	params.Set("latitude", fmt.Sprintf("%v", lat))
	params.Set("longitude", fmt.Sprintf("%v", lon))
	params.Set("start", fmt.Sprintf("%d0101", startYear))
	params.Set("end", fmt.Sprintf("%d1231", endYear))
	params.Set("format", "JSON")
	requestURL := c.baseURL + "?" + params.Encode()

	var body []byte
	operation := func() error {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.PowerAPICallsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("fetch daily: %w", err)
		}
		defer resp.Body.Close()
		metrics.PowerAPILatency.Observe(time.Since(start).Seconds())

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			metrics.PowerAPICallsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()
			return fmt.Errorf("fetch daily: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			metrics.PowerAPICallsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()
			return backoff.Permanent(fmt.Errorf("fetch daily: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		metrics.PowerAPICallsTotal.WithLabelValues("200").Inc()
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func parseResponse(body []byte) ([]models.DailyRecord, error) {
	var data powerResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if len(data.Messages) > 0 {
		return nil, fmt.Errorf("api error: %v", data.Messages)
	}

	tempMax := data.Properties.Parameter["T2M_MAX"]
	tempMin := data.Properties.Parameter["T2M_MIN"]
	tempAvg := data.Properties.Parameter["T2M"]
	precip := data.Properties.Parameter["PRECTOTCORR"]
	if len(tempMax) == 0 || len(tempMin) == 0 || len(tempAvg) == 0 || len(precip) == 0 {
		return nil, fmt.Errorf("missing climate parameters in response")
	}

	var records []models.DailyRecord
	for dateStr, max := range tempMax {
		min, okMin := tempMin[dateStr]
		avg, okAvg := tempAvg[dateStr]
		pr, okPr := precip[dateStr]
		if !okMin || !okAvg || !okPr {
			continue
		}
		if max == missingValue || min == missingValue || avg == missingValue || pr == missingValue {
			continue
		}
		day, err := time.Parse("20060102", dateStr)
		if err != nil {
			continue
		}
		records = append(records, models.DailyRecord{
			Year:    day.Year(),
			Month:   int(day.Month()),
			TempMax: max,
			TempMin: min,
			TempAvg: avg,
			Precip:  pr,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records in response")
	}
	return records, nil
}
