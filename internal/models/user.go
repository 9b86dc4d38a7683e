package models

// Gender values used by the API.
const (
	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

const (
	UserTypeNormal = "normal"
	UserTypeVIP    = "vip"
)

// Activity levels accepted by the profile endpoint.
const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
	ActivityExtraActive      = "extra_active"
)

type UserInfo struct {
	ID              int64   `json:"id"`
	Phone           string  `json:"phone"`
	Nickname        string  `json:"nickname"`
	Avatar          string  `json:"avatar"`
	Gender          int     `json:"gender"`
	Age             int     `json:"age"`
	Height          float64 `json:"height"`
	Weight          float64 `json:"weight"`
	BasalMetabolism float64 `json:"basalMetabolism"`
	UserType        string  `json:"userType"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// UserProfile is the editable superset of UserInfo.
type UserProfile struct {
	ID              int64   `json:"id"`
	Phone           string  `json:"phone"`
	Nickname        string  `json:"nickname"`
	Avatar          string  `json:"avatar"`
	Gender          int     `json:"gender"`
	Age             int     `json:"age"`
	Height          float64 `json:"height"`
	Weight          float64 `json:"weight"`
	TargetWeight    float64 `json:"targetWeight"`
	BasalMetabolism float64 `json:"basalMetabolism"`
	ActivityLevel   string  `json:"activityLevel"`
	UserType        string  `json:"userType"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// WeightToLose is how far the profile still is from its target, never negative.
func (p UserProfile) WeightToLose() float64 {
	if p.Weight <= p.TargetWeight {
		return 0
	}
	return p.Weight - p.TargetWeight
}

// UserUpdateRequest sends only the fields that are set.
type UserUpdateRequest struct {
	Nickname      *string  `json:"nickname,omitempty" validate:"omitempty,max=32"`
	Gender        *int     `json:"gender,omitempty" validate:"omitempty,oneof=0 1 2"`
	Age           *int     `json:"age,omitempty" validate:"omitempty,min=1,max=150"`
	Height        *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Weight        *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	TargetWeight  *float64 `json:"targetWeight,omitempty" validate:"omitempty,gt=0"`
	ActivityLevel *string  `json:"activityLevel,omitempty" validate:"omitempty,oneof=sedentary lightly_active moderately_active very_active extra_active"`
}

type UserGoal struct {
	ID                  int64   `json:"id"`
	UserID              int64   `json:"userId"`
	TargetWeight        float64 `json:"targetWeight" validate:"gte=0"`
	DailyCalorieDeficit float64 `json:"dailyCalorieDeficit"`
	TargetDate          string  `json:"targetDate"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

type WeightRecord struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	Weight     float64 `json:"weight"`
	RecordDate string  `json:"recordDate"`
	CreatedAt  string  `json:"createdAt"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

// DeleteResponse is returned by account and record deletion endpoints.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
