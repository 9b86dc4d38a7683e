package models

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Terminal reports whether the server will not move the task any further.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

type (
	FoodCaloriesRequest struct {
		FoodName    string  `json:"foodName"`
		Description *string `json:"description,omitempty"`
	}

	FoodCaloriesResponse struct {
		Success     bool    `json:"success"`
		Calories    float64 `json:"calories"`
		Protein     float64 `json:"protein"`
		Fat         float64 `json:"fat"`
		Carbs       float64 `json:"carbs"`
		FoodName    string  `json:"foodName"`
		Description string  `json:"description"`
	}

	FoodRecognitionResponse struct {
		Success bool       `json:"success"`
		TaskID  string     `json:"taskId"`
		Status  TaskStatus `json:"status"`
		Message string     `json:"message"`
	}

	AITaskStatusResponse struct {
		TaskID       string                 `json:"taskId"`
		Status       TaskStatus             `json:"status"`
		Result       *FoodRecognitionResult `json:"result,omitempty"`
		CreatedAt    string                 `json:"createdAt"`
		CompletedAt  *string                `json:"completedAt,omitempty"`
		ErrorMessage *string                `json:"errorMessage,omitempty"`
	}

	FoodRecognitionResult struct {
		Foods      []RecognizedFood `json:"foods"`
		Confidence float64          `json:"confidence"`
	}

	RecognizedFood struct {
		Name        string       `json:"name"`
		Weight      float64      `json:"weight"`
		Confidence  float64      `json:"confidence"`
		Calories    float64      `json:"calories"`
		Protein     float64      `json:"protein"`
		Fat         float64      `json:"fat"`
		Carbs       float64      `json:"carbs"`
		BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
	}

	BoundingBox struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}

	AITask struct {
		ID             int64      `json:"id"`
		UserID         int64      `json:"userId"`
		TaskType       string     `json:"taskType"`
		Status         TaskStatus `json:"status"`
		RequestData    string     `json:"requestData"`
		ResponseData   string     `json:"responseData"`
		CozeWorkflowID string     `json:"cozeWorkflowId"`
		ErrorMessage   *string    `json:"errorMessage,omitempty"`
		CreatedAt      string     `json:"createdAt"`
		CompletedAt    *string    `json:"completedAt,omitempty"`
	}

	// RecognitionWithCalories is the joined result of recognition plus per-food lookups.
	RecognitionWithCalories struct {
		Recognition FoodRecognitionResult  `json:"recognition"`
		Calories    []FoodCaloriesResponse `json:"calories"`
	}

	// Suggestion is one AI recommendation for a food or an exercise.
	Suggestion struct {
		Name     string  `json:"name"`
		Calories float64 `json:"calories"`
		Amount   string  `json:"amount"`
		Reason   string  `json:"reason"`
	}
)
