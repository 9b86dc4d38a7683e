package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/pkg/logger"
)

type CalorieService struct {
	client    *api.Client
	validator *validator.Validate
	now       func() time.Time
	logger    *logger.Logger
}

func NewCalorieService(client *api.Client, v *validator.Validate, now func() time.Time, l *logger.Logger) *CalorieService {
	if now == nil {
		now = time.Now
	}
	return &CalorieService{client: client, validator: v, now: now, logger: l}
}

func (s *CalorieService) AddFoodIntake(ctx context.Context, req models.FoodIntakeRequest) (models.CalorieRecord, error) {
	if err := validate(s.validator, req); err != nil {
		return models.CalorieRecord{}, err
	}
	return api.Do[models.CalorieRecord](ctx, s.client, api.AddFoodIntake{Request: req})
}

func (s *CalorieService) AddExercise(ctx context.Context, req models.ExerciseRecordRequest) (models.CalorieRecord, error) {
	if err := validate(s.validator, req); err != nil {
		return models.CalorieRecord{}, err
	}
	return api.Do[models.CalorieRecord](ctx, s.client, api.AddExerciseRecord{Request: req})
}

func (s *CalorieService) GetTodaySummary(ctx context.Context) (models.TodaySummary, error) {
	return api.Do[models.TodaySummary](ctx, s.client, api.GetTodaySummary{})
}

// GetCalorieHistory returns the records of a single day.
func (s *CalorieService) GetCalorieHistory(ctx context.Context, date string) (models.CalorieHistory, error) {
	return api.Do[models.CalorieHistory](ctx, s.client, api.GetCalorieHistory{StartDate: date, EndDate: date})
}

func (s *CalorieService) GetCalorieHistoryRange(ctx context.Context, startDate, endDate string) ([]models.CalorieHistory, error) {
	return api.DoArray[models.CalorieHistory](ctx, s.client, api.GetCalorieHistoryRange{StartDate: startDate, EndDate: endDate})
}

func (s *CalorieService) UpdateCalorieRecord(ctx context.Context, recordID int64, req models.CalorieRecordRequest) (models.CalorieRecord, error) {
	if err := validate(s.validator, req); err != nil {
		return models.CalorieRecord{}, err
	}
	return api.Do[models.CalorieRecord](ctx, s.client, api.UpdateCalorieRecord{RecordID: recordID, Request: req})
}

func (s *CalorieService) DeleteCalorieRecord(ctx context.Context, recordID int64) (bool, error) {
	resp, err := api.Do[models.DeleteResponse](ctx, s.client, api.DeleteCalorieRecord{RecordID: recordID})
	return resp.Success, err
}

func (s *CalorieService) SearchFood(ctx context.Context, keyword string) ([]models.FoodInfo, error) {
	return api.DoArray[models.FoodInfo](ctx, s.client, api.SearchFood{Keyword: keyword})
}

func (s *CalorieService) GetFoodDetail(ctx context.Context, foodID int64) (models.FoodInfo, error) {
	return api.Do[models.FoodInfo](ctx, s.client, api.GetFoodDetail{FoodID: foodID})
}

func (s *CalorieService) SearchExercise(ctx context.Context, keyword string) ([]models.ExerciseInfo, error) {
	return api.DoArray[models.ExerciseInfo](ctx, s.client, api.SearchExercise{Keyword: keyword})
}

func (s *CalorieService) GetExerciseDetail(ctx context.Context, exerciseID int64) (models.ExerciseInfo, error) {
	return api.Do[models.ExerciseInfo](ctx, s.client, api.GetExerciseDetail{ExerciseID: exerciseID})
}

// GetExerciseRecords pages through exercise records. Nil dates are not sent.
func (s *CalorieService) GetExerciseRecords(ctx context.Context, startDate, endDate *string, page, size int) (models.Statistics, error) {
	return api.Do[models.Statistics](ctx, s.client, api.GetExerciseRecords{
		StartDate: startDate, EndDate: endDate, Page: page, Size: size,
	})
}

func (s *CalorieService) UpdateExerciseRecord(ctx context.Context, recordID int64, req models.ExerciseRecordRequest) (models.CalorieRecord, error) {
	if err := validate(s.validator, req); err != nil {
		return models.CalorieRecord{}, err
	}
	return api.Do[models.CalorieRecord](ctx, s.client, api.UpdateExerciseRecord{RecordID: recordID, Request: req})
}

func (s *CalorieService) DeleteExerciseRecord(ctx context.Context, recordID int64) (bool, error) {
	resp, err := api.Do[models.DeleteResponse](ctx, s.client, api.DeleteExerciseRecord{RecordID: recordID})
	return resp.Success, err
}

func (s *CalorieService) GetPopularExercises(ctx context.Context) ([]models.ExerciseInfo, error) {
	return api.DoArray[models.ExerciseInfo](ctx, s.client, api.GetPopularExercises{})
}

// GetCalorieTrend asks for the trend from days ago up to today.
func (s *CalorieService) GetCalorieTrend(ctx context.Context, days int) (models.CalorieTrendResponse, error) {
	now := s.now()
	start := now.AddDate(0, 0, -days).Format(dateLayout)
	end := now.Format(dateLayout)
	return api.Do[models.CalorieTrendResponse](ctx, s.client, api.GetCalorieTrend{
		Period:    "days",
		StartDate: &start,
		EndDate:   &end,
	})
}

func (s *CalorieService) GetWeightTrend(ctx context.Context, period string, startDate, endDate *string) (models.WeightTrendResponse, error) {
	return api.Do[models.WeightTrendResponse](ctx, s.client, api.GetWeightTrend{
		Period: period, StartDate: startDate, EndDate: endDate,
	})
}

func (s *CalorieService) GetWeeklyStats(ctx context.Context, startDate string) ([]models.CalorieHistory, error) {
	return api.DoArray[models.CalorieHistory](ctx, s.client, api.GetWeeklyStats{StartDate: startDate})
}

// GetMonthlyStats takes month as YYYY-MM.
func (s *CalorieService) GetMonthlyStats(ctx context.Context, month string) ([]models.CalorieHistory, error) {
	return api.DoArray[models.CalorieHistory](ctx, s.client, api.GetMonthlyStats{Month: month})
}

// QuickAddFood records a food for today and lets the server fill in calories.
func (s *CalorieService) QuickAddFood(ctx context.Context, foodName string, weight float64, mealType string) (models.CalorieRecord, error) {
	return s.AddFoodIntake(ctx, models.FoodIntakeRequest{
		FoodName:   foodName,
		Weight:     weight,
		MealType:   mealType,
		RecordTime: today(s.now),
	})
}

// QuickAddExercise records an exercise for today and lets the server fill in
// the calories burned.
func (s *CalorieService) QuickAddExercise(ctx context.Context, exerciseName string, duration int) (models.CalorieRecord, error) {
	return s.AddExercise(ctx, models.ExerciseRecordRequest{
		ExerciseName: exerciseName,
		Duration:     duration,
		RecordDate:   today(s.now),
	})
}
