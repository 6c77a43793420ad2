package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"plansync/core/config"
	"plansync/core/constants"
	authentity "plansync/modules/auth/entity"
	scheduleentity "plansync/modules/schedule/entity"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// generatedActivity is the shape the model is asked to return for each idea.
type generatedActivity struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	SlotIndex        int    `json:"slot_index"`
	DurationMinutes  int    `json:"duration_minutes"`
	EnergyLevel      int    `json:"energy_level"`
	WeatherDependent bool   `json:"weather_dependent"`
	IndoorActivity   bool   `json:"indoor_activity"`
}

type openAIClient struct {
	apiKey string
	model  string
	client *http.Client
}

func newOpenAIClient(cfg config.OpenAIConfig) *openAIClient {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &openAIClient{
		apiKey: cfg.APIKey,
		model:  model,
		client: &http.Client{Timeout: constants.DefaultTimeout},
	}
}

func (c *openAIClient) enabled() bool {
	return c.apiKey != ""
}

// GenerateActivities asks the model for one activity idea per free slot,
// biased by the user's stored preferences.
func (c *openAIClient) GenerateActivities(ctx context.Context, slots []scheduleentity.FreeSlot, prefs *authentity.UserPreferences) ([]generatedActivity, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not configured")
	}

	prompt := buildActivityPrompt(slots, prefs)

	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You suggest leisure activities. Reply with a JSON array only, no prose. Each element: {\"title\", \"description\", \"category\", \"location\", \"slot_index\", \"duration_minutes\", \"energy_level\" (1-5), \"weather_dependent\", \"indoor_activity\"}."},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.8,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIChatURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI API error: %d: %s", resp.StatusCode, string(respBody))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI returned no choices")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var activities []generatedActivity
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &activities); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	return activities, nil
}

func buildActivityPrompt(slots []scheduleentity.FreeSlot, prefs *authentity.UserPreferences) string {
	var b strings.Builder
	b.WriteString("Suggest one activity for each of these free time slots:\n")
	for i, s := range slots {
		fmt.Fprintf(&b, "%d. %s to %s (%d minutes)\n", i,
			s.Start.Format(time.Kitchen), s.End.Format(time.Kitchen), s.DurationMinutes)
	}
	if prefs != nil {
		if len(prefs.Interests) > 0 {
			fmt.Fprintf(&b, "Interests: %s\n", strings.Join(prefs.Interests, ", "))
		}
		if len(prefs.ActivityTypes) > 0 {
			fmt.Fprintf(&b, "Preferred activity types: %s\n", strings.Join(prefs.ActivityTypes, ", "))
		}
		if len(prefs.DietaryRestrictions) > 0 {
			fmt.Fprintf(&b, "Dietary restrictions: %s\n", strings.Join(prefs.DietaryRestrictions, ", "))
		}
	}
	b.WriteString("Set slot_index to the slot number each activity belongs to. ")
	b.WriteString("duration_minutes must not exceed the slot length.")
	return b.String()
}
