package api

import (
	"daily-energy/internal/models"
)

// Endpoint is one API operation together with its parameters. The set of
// implementations is closed; see route.go for how each one maps onto HTTP.
type Endpoint interface {
	isEndpoint()
}

// Auth.
type (
	SendCode struct {
		Phone string
	}
	Login struct {
		Phone     string
		Code      string
		LoginType string
	}
	WechatLogin struct {
		Code string
	}
	AppleLogin struct {
		IdentityToken     string
		AuthorizationCode *string
	}
	RefreshToken struct{}
	Logout       struct{}
)

// User, goal and weight records.
type (
	GetUserProfile    struct{}
	UpdateUserProfile struct {
		Request models.UserUpdateRequest
	}
	UploadAvatar   struct{}
	DeleteAccount  struct{}
	GetUserGoal    struct{}
	UpdateUserGoal struct {
		Goal models.UserGoal
	}
	GetWeightRecords struct {
		StartDate string
		EndDate   string
	}
	AddWeightRecord struct {
		Weight float64
		Date   string
	}
	UpdateWeightRecord struct {
		RecordID int64
		Weight   float64
	}
	DeleteWeightRecord struct {
		RecordID int64
	}
)

// Calorie records and food catalogue.
type (
	AddFoodIntake struct {
		Request models.FoodIntakeRequest
	}
	GetTodaySummary   struct{}
	GetCalorieHistory struct {
		StartDate string
		EndDate   string
	}
	GetCalorieHistoryRange struct {
		StartDate string
		EndDate   string
	}
	UpdateCalorieRecord struct {
		RecordID int64
		Request  models.CalorieRecordRequest
	}
	DeleteCalorieRecord struct {
		RecordID int64
	}
	SearchFood struct {
		Keyword string
	}
	GetFoodDetail struct {
		FoodID int64
	}
)

// Exercise.
type (
	SearchExercise struct {
		Keyword string
	}
	GetExerciseDetail struct {
		ExerciseID int64
	}
	AddExerciseRecord struct {
		Request models.ExerciseRecordRequest
	}
	GetExerciseRecords struct {
		StartDate *string
		EndDate   *string
		Page      int
		Size      int
	}
	UpdateExerciseRecord struct {
		RecordID int64
		Request  models.ExerciseRecordRequest
	}
	DeleteExerciseRecord struct {
		RecordID int64
	}
	GetPopularExercises   struct{}
	GetExerciseStatistics struct {
		Period    string
		StartDate *string
		EndDate   *string
	}
)

// Statistics and reports.
type (
	GetCalorieTrend struct {
		Period    string
		StartDate *string
		EndDate   *string
	}
	GetStatisticsOverview struct{}
	GetNutritionAnalysis  struct {
		Period    string
		StartDate *string
		EndDate   *string
	}
	GetWeightTrend struct {
		Period    string
		StartDate *string
		EndDate   *string
	}
	GetStatisticsExercise struct {
		Period    string
		StartDate *string
		EndDate   *string
	}
	GetGoalAchievement struct {
		Period *string
	}
	GetFoodPreference struct {
		Period *string
	}
	GetHealthScore struct {
		Date *string
	}
	GetWeeklyReport struct {
		WeekStart *string
	}
	GetMonthlyReport struct {
		Month *string
	}
	GetLeaderboard struct {
		Type  string
		Limit int
	}
	ExportStatistics struct {
		Type      string
		Format    string
		StartDate *string
		EndDate   *string
	}
	GetWeeklyStats struct {
		StartDate string
	}
	GetMonthlyStats struct {
		Month string
	}
)

// AI recognition.
type (
	UploadImage   struct{}
	RecognizeFood struct {
		ImageURL string
	}
	GetTaskStatus struct {
		TaskID string
	}
	GetFoodCalories struct {
		FoodName    string
		Description *string
	}
)

func (SendCode) isEndpoint()               {}
func (Login) isEndpoint()                  {}
func (WechatLogin) isEndpoint()            {}
func (AppleLogin) isEndpoint()             {}
func (RefreshToken) isEndpoint()           {}
func (Logout) isEndpoint()                 {}
func (GetUserProfile) isEndpoint()         {}
func (UpdateUserProfile) isEndpoint()      {}
func (UploadAvatar) isEndpoint()           {}
func (DeleteAccount) isEndpoint()          {}
func (GetUserGoal) isEndpoint()            {}
func (UpdateUserGoal) isEndpoint()         {}
func (GetWeightRecords) isEndpoint()       {}
func (AddWeightRecord) isEndpoint()        {}
func (UpdateWeightRecord) isEndpoint()     {}
func (DeleteWeightRecord) isEndpoint()     {}
func (AddFoodIntake) isEndpoint()          {}
func (GetTodaySummary) isEndpoint()        {}
func (GetCalorieHistory) isEndpoint()      {}
func (GetCalorieHistoryRange) isEndpoint() {}
func (UpdateCalorieRecord) isEndpoint()    {}
func (DeleteCalorieRecord) isEndpoint()    {}
func (SearchFood) isEndpoint()             {}
func (GetFoodDetail) isEndpoint()          {}
func (SearchExercise) isEndpoint()         {}
func (GetExerciseDetail) isEndpoint()      {}
func (AddExerciseRecord) isEndpoint()      {}
func (GetExerciseRecords) isEndpoint()     {}
func (UpdateExerciseRecord) isEndpoint()   {}
func (DeleteExerciseRecord) isEndpoint()   {}
func (GetPopularExercises) isEndpoint()    {}
func (GetExerciseStatistics) isEndpoint()  {}
func (GetCalorieTrend) isEndpoint()        {}
func (GetStatisticsOverview) isEndpoint()  {}
func (GetNutritionAnalysis) isEndpoint()   {}
func (GetWeightTrend) isEndpoint()         {}
func (GetStatisticsExercise) isEndpoint()  {}
func (GetGoalAchievement) isEndpoint()     {}
func (GetFoodPreference) isEndpoint()      {}
func (GetHealthScore) isEndpoint()         {}
func (GetWeeklyReport) isEndpoint()        {}
func (GetMonthlyReport) isEndpoint()       {}
func (GetLeaderboard) isEndpoint()         {}
func (ExportStatistics) isEndpoint()       {}
func (GetWeeklyStats) isEndpoint()         {}
func (GetMonthlyStats) isEndpoint()        {}
func (UploadImage) isEndpoint()            {}
func (RecognizeFood) isEndpoint()          {}
func (GetTaskStatus) isEndpoint()          {}
func (GetFoodCalories) isEndpoint()        {}
