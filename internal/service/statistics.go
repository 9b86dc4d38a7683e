package service

import (
	"context"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/pkg/logger"
)

// StatisticsService reads reports whose shape the server owns; every call
// returns the raw data object.
type StatisticsService struct {
	client *api.Client
	logger *logger.Logger
}

func NewStatisticsService(client *api.Client, l *logger.Logger) *StatisticsService {
	return &StatisticsService{client: client, logger: l}
}

// DateRange is an optional start/end pair in YYYY-MM-DD.
type DateRange struct {
	Start *string
	End   *string
}

func (s *StatisticsService) Overview(ctx context.Context) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetStatisticsOverview{})
}

func (s *StatisticsService) NutritionAnalysis(ctx context.Context, period string, r DateRange) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetNutritionAnalysis{Period: period, StartDate: r.Start, EndDate: r.End})
}

// ExerciseStatistics reads /exercise/statistics.
func (s *StatisticsService) ExerciseStatistics(ctx context.Context, period string, r DateRange) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetExerciseStatistics{Period: period, StartDate: r.Start, EndDate: r.End})
}

// StatisticsExercise reads /statistics/exercise.
func (s *StatisticsService) StatisticsExercise(ctx context.Context, period string, r DateRange) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetStatisticsExercise{Period: period, StartDate: r.Start, EndDate: r.End})
}

func (s *StatisticsService) GoalAchievement(ctx context.Context, period *string) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetGoalAchievement{Period: period})
}

func (s *StatisticsService) FoodPreference(ctx context.Context, period *string) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetFoodPreference{Period: period})
}

func (s *StatisticsService) HealthScore(ctx context.Context, date *string) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetHealthScore{Date: date})
}

func (s *StatisticsService) WeeklyReport(ctx context.Context, weekStart *string) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetWeeklyReport{WeekStart: weekStart})
}

func (s *StatisticsService) MonthlyReport(ctx context.Context, month *string) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetMonthlyReport{Month: month})
}

func (s *StatisticsService) Leaderboard(ctx context.Context, boardType string, limit int) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetLeaderboard{Type: boardType, Limit: limit})
}

func (s *StatisticsService) Export(ctx context.Context, exportType, format string, r DateRange) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.ExportStatistics{
		Type: exportType, Format: format, StartDate: r.Start, EndDate: r.End,
	})
}
