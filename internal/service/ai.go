package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"daily-energy/internal/advisor"
	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/pkg/logger"
)

const (
	DefaultPollAttempts = 30
	DefaultPollInterval = 2 * time.Second

	imageFilename = "image.jpg"
)

// PollConfig bounds PollTaskStatus. The wait between polls is fixed.
type PollConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

func (c PollConfig) withDefaults() PollConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultPollAttempts
	}
	if c.Interval <= 0 {
		c.Interval = DefaultPollInterval
	}
	return c
}

type AIService struct {
	client  *api.Client
	advisor *advisor.Client
	poll    PollConfig
	logger  *logger.Logger
}

// NewAIService builds the service. A nil advisor disables suggestions.
func NewAIService(client *api.Client, adv *advisor.Client, poll PollConfig, l *logger.Logger) *AIService {
	return &AIService{client: client, advisor: adv, poll: poll.withDefaults(), logger: l}
}

func (s *AIService) UploadImage(ctx context.Context, image []byte) (models.UploadResponse, error) {
	return api.Upload[models.UploadResponse](ctx, s.client, api.UploadImage{}, image, imageFilename, jpegMIME)
}

// RecognizeFood starts recognition of an already uploaded image.
func (s *AIService) RecognizeFood(ctx context.Context, imageURL string) (models.FoodRecognitionResponse, error) {
	return api.Do[models.FoodRecognitionResponse](ctx, s.client, api.RecognizeFood{ImageURL: imageURL})
}

// RecognizeImage uploads image and starts recognition of the stored copy.
func (s *AIService) RecognizeImage(ctx context.Context, image []byte) (models.FoodRecognitionResponse, error) {
	upload, err := s.UploadImage(ctx, image)
	if err != nil {
		return models.FoodRecognitionResponse{}, err
	}
	return s.RecognizeFood(ctx, upload.URL)
}

func (s *AIService) GetTaskStatus(ctx context.Context, taskID string) (models.AITaskStatusResponse, error) {
	return api.Do[models.AITaskStatusResponse](ctx, s.client, api.GetTaskStatus{TaskID: taskID})
}

// PollTaskStatus polls until the task is completed or failed. It gives up
// with a timeout error after the configured number of polls that all came
// back non-terminal, and returns the first transport error as is.
func (s *AIService) PollTaskStatus(ctx context.Context, taskID string) (models.AITaskStatusResponse, error) {
	for attempt := 1; ; attempt++ {
		status, err := s.GetTaskStatus(ctx, taskID)
		if err != nil {
			return status, err
		}
		if status.Status.Terminal() {
			return status, nil
		}
		if attempt >= s.poll.MaxAttempts {
			s.logger.Warnw("AI task did not finish in time",
				"taskId", taskID, "attempts", attempt, "status", status.Status)
			return status, &api.Error{Kind: api.KindTimeout}
		}

		s.logger.Debugw("AI task still running", "taskId", taskID, "attempt", attempt, "status", status.Status)
		timer := time.NewTimer(s.poll.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return status, contextError(ctx.Err())
		case <-timer.C:
		}
	}
}

func contextError(err error) *api.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &api.Error{Kind: api.KindTimeout, Err: err}
	}
	return &api.Error{Kind: api.KindUnknown, Err: err}
}

func (s *AIService) GetFoodCalories(ctx context.Context, foodName string, description *string) (models.FoodCaloriesResponse, error) {
	return api.Do[models.FoodCaloriesResponse](ctx, s.client, api.GetFoodCalories{FoodName: foodName, Description: description})
}

// RecognizeFoodAndGetCalories runs upload, recognition and polling, then looks
// up the calories of every recognized food concurrently.
func (s *AIService) RecognizeFoodAndGetCalories(ctx context.Context, image []byte) (models.RecognitionWithCalories, error) {
	var out models.RecognitionWithCalories

	started, err := s.RecognizeImage(ctx, image)
	if err != nil {
		return out, err
	}
	if !started.Success {
		return out, api.ServerError("recognition request failed")
	}

	status, err := s.PollTaskStatus(ctx, started.TaskID)
	if err != nil {
		return out, err
	}
	if status.Status != models.TaskCompleted || status.Result == nil {
		reason := "unknown error"
		if status.ErrorMessage != nil && *status.ErrorMessage != "" {
			reason = *status.ErrorMessage
		}
		return out, api.ServerError("recognition failed: " + reason)
	}

	calories, err := s.caloriesFor(ctx, status.Result.Foods)
	if err != nil {
		return out, err
	}
	out.Recognition = *status.Result
	out.Calories = calories
	return out, nil
}

// caloriesFor waits for every lookup before returning, so a failure never
// leaves calls running in the background.
func (s *AIService) caloriesFor(ctx context.Context, foods []models.RecognizedFood) ([]models.FoodCaloriesResponse, error) {
	results := make([]models.FoodCaloriesResponse, len(foods))
	var g errgroup.Group
	for i, food := range foods {
		i, food := i, food
		g.Go(func() error {
			resp, err := s.GetFoodCalories(ctx, food.Name, nil)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FoodSuggestions asks the advisor for meal ideas. Without an advisor it
// returns an empty list.
func (s *AIService) FoodSuggestions(ctx context.Context, summary models.TodaySummary, mealType string) ([]models.Suggestion, error) {
	if s.advisor == nil {
		return []models.Suggestion{}, nil
	}
	return s.advisor.SuggestFoods(ctx, summary, mealType)
}

func (s *AIService) ExerciseSuggestions(ctx context.Context, summary models.TodaySummary) ([]models.Suggestion, error) {
	if s.advisor == nil {
		return []models.Suggestion{}, nil
	}
	return s.advisor.SuggestExercises(ctx, summary)
}
