package models

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Record types of a CalorieRecord.
const (
	RecordFood     = "food"
	RecordExercise = "exercise"
)

type (
	CalorieRecordRequest struct {
		FoodName   string   `json:"foodName" validate:"required"`
		Quantity   float64  `json:"quantity" validate:"gt=0"`
		Unit       string   `json:"unit" validate:"required"`
		Calories   float64  `json:"calories" validate:"gte=0"`
		MealType   string   `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
		RecordTime string   `json:"recordTime" validate:"required"`
		ImageURL   *string  `json:"imageUrl,omitempty"`
		Protein    *float64 `json:"protein,omitempty"`
		Carbs      *float64 `json:"carbs,omitempty"`
		Fat        *float64 `json:"fat,omitempty"`
		Fiber      *float64 `json:"fiber,omitempty"`
		Sugar      *float64 `json:"sugar,omitempty"`
		Sodium     *float64 `json:"sodium,omitempty"`
		Notes      *string  `json:"notes,omitempty"`
	}

	FoodIntakeRequest struct {
		FoodName   string  `json:"foodName" validate:"required"`
		Weight     float64 `json:"weight" validate:"gt=0"`
		Calories   float64 `json:"calories" validate:"gte=0"`
		MealType   string  `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
		RecordTime string  `json:"recordTime" validate:"required"`
	}

	ExerciseRecordRequest struct {
		ExerciseName   string  `json:"exerciseName" validate:"required"`
		Duration       int     `json:"duration" validate:"gt=0"`
		CaloriesBurned float64 `json:"caloriesBurned" validate:"gte=0"`
		ExerciseType   *string `json:"exerciseType,omitempty"`
		Intensity      *string `json:"intensity,omitempty"`
		RecordDate     string  `json:"recordDate" validate:"required"`
		Notes          *string `json:"notes,omitempty"`
	}

	CalorieRecord struct {
		ID         int64    `json:"id"`
		UserID     int64    `json:"userId"`
		RecordType string   `json:"recordType"`
		FoodID     *int64   `json:"foodId,omitempty"`
		ExerciseID *int64   `json:"exerciseId,omitempty"`
		Weight     *float64 `json:"weight,omitempty"`
		Duration   *int     `json:"duration,omitempty"`
		Calories   float64  `json:"calories"`
		MealType   *string  `json:"mealType,omitempty"`
		RecordDate string   `json:"recordDate"`
		CreatedAt  string   `json:"createdAt"`
	}

	// TodaySummary is the home dashboard. All numbers come from the server as is.
	TodaySummary struct {
		BasalMetabolism     float64  `json:"basalMetabolism"`
		FoodIntake          float64  `json:"foodIntake"`
		ExerciseConsumption float64  `json:"exerciseConsumption"`
		RemainingCalories   float64  `json:"remainingCalories"`
		CalorieDeficit      float64  `json:"calorieDeficit"`
		TodayWeight         *float64 `json:"todayWeight,omitempty"`
		TargetCalories      float64  `json:"targetCalories"`
	}

	CalorieHistory struct {
		Records       []CalorieRecord `json:"records"`
		TotalCalories float64         `json:"totalCalories"`
		TotalExercise float64         `json:"totalExercise"`
		NetCalories   float64         `json:"netCalories"`
	}

	FoodInfo struct {
		ID              int64   `json:"id"`
		Name            string  `json:"name"`
		CaloriesPer100g float64 `json:"caloriesPer100g"`
		Category        string  `json:"category"`
		ImageURL        string  `json:"imageUrl"`
		Protein         float64 `json:"protein"`
		Fat             float64 `json:"fat"`
		Carbs           float64 `json:"carbs"`
	}

	ExerciseInfo struct {
		ID               int64   `json:"id"`
		Name             string  `json:"name"`
		CaloriesPer30min float64 `json:"caloriesPer30min"`
		Category         string  `json:"category"`
	}

	CalorieTrend struct {
		Date        string   `json:"date"`
		Intake      float64  `json:"intake"`
		Consumption float64  `json:"consumption"`
		Deficit     float64  `json:"deficit"`
		Weight      *float64 `json:"weight,omitempty"`
	}

	CalorieTrendResponse struct {
		Trends         []CalorieTrend `json:"trends"`
		Period         string         `json:"period"`
		AverageDeficit float64        `json:"averageDeficit"`
		TotalDeficit   float64        `json:"totalDeficit"`
	}

	WeightTrendResponse struct {
		Weights       []WeightRecord `json:"weights"`
		Period        string         `json:"period"`
		WeightChange  float64        `json:"weightChange"`
		AverageWeight float64        `json:"averageWeight"`
	}

	// Statistics holds report payloads whose schema is owned by the server.
	Statistics map[string]any
)
