// Package advisor generates weather-compatible Plan B alternatives with an
// OpenAI model. It is an optional collaborator: construction fails without
// an API key, and any generation or parsing failure surfaces as an error so
// the caller can fall back to the static catalog.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"paradecast/internal/models"
)

type Advisor struct {
	client openai.Client
	model  string
}

// New creates an advisor authenticated from the OPENAI_API_KEY environment
// variable.
func New() (*Advisor, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Advisor{
		client: client,
		model:  "gpt-4o-mini",
	}, nil
}

// Request carries the context the model needs to suggest alternatives.
type Request struct {
	Condition models.Condition
	Activity  models.Activity
	Risk      models.ConditionRisk
	Latitude  float64
	Longitude float64
	Month     int
}

// PlanB asks the model for 3-4 alternatives compatible with the adverse
// condition and returns them with the model name as provenance.
func (a *Advisor) PlanB(ctx context.Context, req Request) (*models.PlanB, error) {
	prompt := buildPrompt(req)

	log.Printf("generating plan B for condition=%s activity=%s", req.Condition, req.Activity)

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("plan B generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no completion returned")
	}

	alternatives, err := parseAlternatives(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse plan B response: %w", err)
	}

	log.Printf("plan B generated: %d alternatives", len(alternatives))
	return &models.PlanB{
		Provenance:   a.model,
		Alternatives: alternatives,
	}, nil
}

type planBResponse struct {
	Alternatives []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Reason      string `json:"reason"`
		Tips        string `json:"tips"`
		Location    string `json:"location"`
		Duration    string `json:"duration"`
		Cost        string `json:"cost"`
	} `json:"alternatives"`
}

// parseAlternatives extracts the JSON object from the completion text,
// tolerating markdown code fences, and validates each alternative. Entries
// without a title are dropped; other missing fields get defaults.
func parseAlternatives(text string) ([]models.Alternative, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("no JSON object in response")
	}

	var parsed planBResponse
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	var alternatives []models.Alternative
	for _, alt := range parsed.Alternatives {
		if alt.Title == "" {
			continue
		}
		kind := alt.Type
		if kind == "" {
			kind = "mixed"
		}
		reasoning := alt.Reason
		if reasoning == "" {
			reasoning = "Good alternative for the expected conditions"
		}
		alternatives = append(alternatives, models.Alternative{
			Title:         alt.Title,
			Description:   alt.Description,
			Kind:          kind,
			Reasoning:     reasoning,
			Tips:          alt.Tips,
			Location:      alt.Location,
			DurationLabel: alt.Duration,
			CostTier:      alt.Cost,
		})
	}
	if len(alternatives) == 0 {
		return nil, errors.New("no valid alternatives in response")
	}
	return alternatives, nil
}
