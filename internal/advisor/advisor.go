// Package advisor asks a chat model for food and exercise suggestions that
// fit the user's day.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"daily-energy/internal/models"
)

const DefaultModel = openai.GPT4oMini

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	client *openai.Client
	model  string
}

// NewClient returns nil when no API key is configured.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: openai.NewClientWithConfig(oc),
		model:  model,
	}
}

func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

// SuggestFoods proposes dishes for mealType that fit the calories left today.
func (c *Client) SuggestFoods(ctx context.Context, summary models.TodaySummary, mealType string) ([]models.Suggestion, error) {
	prompt := fmt.Sprintf(
		"Suggest 3 to 5 foods for %s.\n"+
			"Daily target: %.0f kcal\n"+
			"Eaten so far: %.0f kcal\n"+
			"Burned by exercise: %.0f kcal\n"+
			"Remaining: %.0f kcal\n\n"+
			"Give a realistic amount for each food and its calories for that amount.",
		mealType, summary.TargetCalories, summary.FoodIntake,
		summary.ExerciseConsumption, summary.RemainingCalories,
	)
	return c.suggest(ctx, prompt)
}

// SuggestExercises proposes activities that close today's calorie gap.
func (c *Client) SuggestExercises(ctx context.Context, summary models.TodaySummary) ([]models.Suggestion, error) {
	prompt := fmt.Sprintf(
		"Suggest 3 to 5 exercises for today.\n"+
			"Daily target: %.0f kcal\n"+
			"Eaten so far: %.0f kcal\n"+
			"Burned by exercise: %.0f kcal\n"+
			"Current deficit: %.0f kcal\n\n"+
			"For each exercise give the duration as the amount and the calories it burns.",
		summary.TargetCalories, summary.FoodIntake,
		summary.ExerciseConsumption, summary.CalorieDeficit,
	)
	return c.suggest(ctx, prompt)
}

func (c *Client) suggest(ctx context.Context, prompt string) ([]models.Suggestion, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a nutrition and fitness coach. Answer only with a JSON array of objects " +
					`with the fields "name", "calories" (number), "amount" and "reason". No prose.`,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   800,
		Temperature: 0.7,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from GPT API")
	}
	return parseSuggestions(resp.Choices[0].Message.Content)
}

// parseSuggestions pulls the JSON array out of a model reply, tolerating code
// fences and text around it.
func parseSuggestions(content string) ([]models.Suggestion, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in model reply")
	}

	var out []models.Suggestion
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	return out, nil
}
