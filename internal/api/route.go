package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"daily-energy/internal/models"
)

// Route is the request shape of an Endpoint.
type Route struct {
	Path      string
	Method    string
	Params    Params
	NeedsAuth bool
}

// Resolve derives the request shape of e. It is a pure function of e.
func Resolve(e Endpoint) Route {
	return Route{
		Path:      path(e),
		Method:    method(e),
		Params:    params(e),
		NeedsAuth: needsAuth(e),
	}
}

func path(e Endpoint) string {
	switch e := e.(type) {
	case SendCode:
		return "/auth/send-code"
	case Login:
		return "/auth/login"
	case WechatLogin:
		return "/auth/login/wechat"
	case AppleLogin:
		return "/auth/login/apple"
	case RefreshToken:
		return "/auth/refresh"
	case Logout:
		return "/auth/logout"
	case GetUserProfile, UpdateUserProfile:
		return "/user/profile"
	case UploadAvatar:
		return "/file/upload/avatar"
	case DeleteAccount:
		return "/user/account"
	case GetUserGoal, UpdateUserGoal:
		return "/user/goal"
	case GetWeightRecords, AddWeightRecord:
		return "/user/weight-records"
	case UpdateWeightRecord:
		return "/user/weight-records/" + id(e.RecordID)
	case DeleteWeightRecord:
		return "/user/weight-records/" + id(e.RecordID)
	case AddFoodIntake:
		return "/calorie/record"
	case GetTodaySummary:
		return "/calorie/daily"
	case GetCalorieHistory:
		return "/calorie/records"
	case GetCalorieHistoryRange:
		return "/calorie/trend"
	case UpdateCalorieRecord:
		return "/calorie/record/" + id(e.RecordID)
	case DeleteCalorieRecord:
		return "/calorie/record/" + id(e.RecordID)
	case SearchFood:
		return "/calorie/food/search"
	case GetFoodDetail:
		return "/calorie/food/" + id(e.FoodID)
	case SearchExercise:
		return "/exercise/search"
	case GetExerciseDetail:
		return "/exercise/" + id(e.ExerciseID)
	case AddExerciseRecord:
		return "/exercise/record"
	case GetExerciseRecords:
		return "/exercise/records"
	case UpdateExerciseRecord:
		return "/exercise/record/" + id(e.RecordID)
	case DeleteExerciseRecord:
		return "/exercise/record/" + id(e.RecordID)
	case GetPopularExercises:
		return "/exercise/popular"
	case GetExerciseStatistics:
		return "/exercise/statistics"
	case GetCalorieTrend:
		return "/statistics/calorie-trend"
	case GetStatisticsOverview:
		return "/statistics/overview"
	case GetNutritionAnalysis:
		return "/statistics/nutrition"
	case GetWeightTrend:
		return "/statistics/weight-trend"
	case GetStatisticsExercise:
		return "/statistics/exercise"
	case GetGoalAchievement:
		return "/statistics/goal-achievement"
	case GetFoodPreference:
		return "/statistics/food-preference"
	case GetHealthScore:
		return "/statistics/health-score"
	case GetWeeklyReport, GetWeeklyStats:
		return "/statistics/weekly-report"
	case GetMonthlyReport, GetMonthlyStats:
		return "/statistics/monthly-report"
	case GetLeaderboard:
		return "/statistics/leaderboard"
	case ExportStatistics:
		return "/statistics/export"
	case UploadImage:
		return "/file/upload/image"
	case RecognizeFood:
		return "/ai/food-recognition"
	case GetTaskStatus:
		return "/ai/task/" + url.PathEscape(e.TaskID)
	case GetFoodCalories:
		return "/ai/food-calories"
	default:
		panic(fmt.Sprintf("api: unhandled endpoint %T", e))
	}
}

func method(e Endpoint) string {
	switch e.(type) {
	case SendCode, Login, WechatLogin, AppleLogin, Logout,
		AddFoodIntake, AddExerciseRecord, AddWeightRecord,
		UploadImage, UploadAvatar, RecognizeFood, GetFoodCalories:
		return http.MethodPost
	case UpdateUserProfile, UpdateUserGoal, UpdateWeightRecord,
		UpdateCalorieRecord, UpdateExerciseRecord:
		return http.MethodPut
	case DeleteAccount, DeleteWeightRecord, DeleteCalorieRecord, DeleteExerciseRecord:
		return http.MethodDelete
	case RefreshToken, GetUserProfile, GetUserGoal, GetWeightRecords,
		GetTodaySummary, GetCalorieHistory, GetCalorieHistoryRange,
		SearchFood, GetFoodDetail, SearchExercise, GetExerciseDetail,
		GetExerciseRecords, GetPopularExercises, GetExerciseStatistics,
		GetCalorieTrend, GetStatisticsOverview, GetNutritionAnalysis,
		GetWeightTrend, GetStatisticsExercise, GetGoalAchievement,
		GetFoodPreference, GetHealthScore, GetWeeklyReport, GetMonthlyReport,
		GetLeaderboard, ExportStatistics, GetWeeklyStats, GetMonthlyStats,
		GetTaskStatus:
		return http.MethodGet
	default:
		panic(fmt.Sprintf("api: unhandled endpoint %T", e))
	}
}

func params(e Endpoint) Params {
	switch e := e.(type) {
	case SendCode:
		return Params{}.With("phone", e.Phone)
	case Login:
		return Params{}.
			With("phone", e.Phone).
			With("code", e.Code).
			With("loginType", e.LoginType)
	case WechatLogin:
		return Params{}.With("code", e.Code)
	case AppleLogin:
		p := Params{}.With("identityToken", e.IdentityToken)
		return withOptional(p, "authorizationCode", e.AuthorizationCode)
	case UpdateUserProfile:
		return userUpdateParams(e.Request)
	case UpdateUserGoal:
		return Params{}.
			With("targetWeight", e.Goal.TargetWeight).
			With("dailyCalorieDeficit", e.Goal.DailyCalorieDeficit).
			With("targetDate", e.Goal.TargetDate)
	case GetWeightRecords:
		return Params{}.With("startDate", e.StartDate).With("endDate", e.EndDate)
	case AddWeightRecord:
		return Params{}.With("weight", e.Weight).With("recordDate", e.Date)
	case UpdateWeightRecord:
		return Params{}.With("weight", e.Weight)
	case AddFoodIntake:
		return Params{}.
			With("foodName", e.Request.FoodName).
			With("weight", e.Request.Weight).
			With("calories", e.Request.Calories).
			With("mealType", e.Request.MealType).
			With("recordTime", e.Request.RecordTime)
	case GetCalorieHistory:
		return Params{}.With("startDate", e.StartDate).With("endDate", e.EndDate)
	case GetCalorieHistoryRange:
		return Params{}.With("startDate", e.StartDate).With("endDate", e.EndDate)
	case UpdateCalorieRecord:
		return calorieRecordParams(e.Request)
	case SearchFood:
		return Params{}.With("keyword", e.Keyword)
	case SearchExercise:
		return Params{}.With("keyword", e.Keyword)
	case AddExerciseRecord:
		return exerciseRecordParams(e.Request)
	case UpdateExerciseRecord:
		return exerciseRecordParams(e.Request)
	case GetExerciseRecords:
		p := Params{}.With("page", e.Page).With("size", e.Size)
		return dateRange(p, e.StartDate, e.EndDate)
	case GetExerciseStatistics:
		return dateRange(Params{}.With("period", e.Period), e.StartDate, e.EndDate)
	case GetCalorieTrend:
		return dateRange(Params{}.With("period", e.Period), e.StartDate, e.EndDate)
	case GetNutritionAnalysis:
		return dateRange(Params{}.With("period", e.Period), e.StartDate, e.EndDate)
	case GetWeightTrend:
		return dateRange(Params{}.With("period", e.Period), e.StartDate, e.EndDate)
	case GetStatisticsExercise:
		return dateRange(Params{}.With("period", e.Period), e.StartDate, e.EndDate)
	case GetGoalAchievement:
		return withOptional(Params(nil), "period", e.Period).orNil()
	case GetFoodPreference:
		return withOptional(Params(nil), "period", e.Period).orNil()
	case GetHealthScore:
		return withOptional(Params(nil), "date", e.Date).orNil()
	case GetWeeklyReport:
		return withOptional(Params(nil), "weekStart", e.WeekStart).orNil()
	case GetMonthlyReport:
		return withOptional(Params(nil), "month", e.Month).orNil()
	case GetLeaderboard:
		return Params{}.With("type", e.Type).With("limit", e.Limit)
	case ExportStatistics:
		p := Params{}.With("type", e.Type).With("format", e.Format)
		return dateRange(p, e.StartDate, e.EndDate)
	case GetWeeklyStats:
		return Params{}.With("startDate", e.StartDate)
	case GetMonthlyStats:
		return Params{}.With("month", e.Month)
	case RecognizeFood:
		return Params{}.With("imageUrl", e.ImageURL)
	case GetFoodCalories:
		p := Params{}.With("foodName", e.FoodName)
		return withOptional(p, "description", e.Description)
	case RefreshToken, Logout, GetUserProfile, UploadAvatar, DeleteAccount,
		GetUserGoal, DeleteWeightRecord, GetTodaySummary, DeleteCalorieRecord,
		GetFoodDetail, GetExerciseDetail, DeleteExerciseRecord,
		GetPopularExercises, GetStatisticsOverview, UploadImage, GetTaskStatus:
		return nil
	default:
		panic(fmt.Sprintf("api: unhandled endpoint %T", e))
	}
}

// needsAuth is false only for the endpoints that obtain a token.
func needsAuth(e Endpoint) bool {
	switch e.(type) {
	case SendCode, Login, WechatLogin, AppleLogin:
		return false
	default:
		return true
	}
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func dateRange(p Params, start, end *string) Params {
	p = withOptional(p, "startDate", start)
	return withOptional(p, "endDate", end)
}

func userUpdateParams(r models.UserUpdateRequest) Params {
	var p Params
	p = withOptional(p, "nickname", r.Nickname)
	p = withOptional(p, "gender", r.Gender)
	p = withOptional(p, "age", r.Age)
	p = withOptional(p, "height", r.Height)
	p = withOptional(p, "weight", r.Weight)
	p = withOptional(p, "targetWeight", r.TargetWeight)
	p = withOptional(p, "activityLevel", r.ActivityLevel)
	return p.orNil()
}

func calorieRecordParams(r models.CalorieRecordRequest) Params {
	p := Params{}.
		With("foodName", r.FoodName).
		With("quantity", r.Quantity).
		With("unit", r.Unit).
		With("calories", r.Calories).
		With("mealType", r.MealType).
		With("recordTime", r.RecordTime)
	p = withOptional(p, "imageUrl", r.ImageURL)
	p = withOptional(p, "protein", r.Protein)
	p = withOptional(p, "carbs", r.Carbs)
	p = withOptional(p, "fat", r.Fat)
	p = withOptional(p, "fiber", r.Fiber)
	p = withOptional(p, "sugar", r.Sugar)
	p = withOptional(p, "sodium", r.Sodium)
	return withOptional(p, "notes", r.Notes)
}

func exerciseRecordParams(r models.ExerciseRecordRequest) Params {
	p := Params{}.
		With("exerciseName", r.ExerciseName).
		With("duration", r.Duration).
		With("caloriesBurned", r.CaloriesBurned)
	p = withOptional(p, "exerciseType", r.ExerciseType)
	p = withOptional(p, "intensity", r.Intensity)
	p = p.With("recordDate", r.RecordDate)
	return withOptional(p, "notes", r.Notes)
}
