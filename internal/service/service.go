// Package service groups API operations by feature and keeps the session in
// step with what the server returns.
package service

import (
	"time"

	"github.com/go-playground/validator/v10"

	"daily-energy/internal/advisor"
	"daily-energy/internal/api"
	"daily-energy/internal/session"
	"daily-energy/pkg/logger"
)

const dateLayout = "2006-01-02"

// Options tunes the services. Zero values fall back to defaults.
type Options struct {
	Poll    PollConfig
	Now     func() time.Time
	Advisor *advisor.Client
}

// Services bundles every feature service over one client and session.
type Services struct {
	Auth       *AuthService
	User       *UserService
	Calorie    *CalorieService
	Statistics *StatisticsService
	AI         *AIService
}

func New(client *api.Client, sess *session.Session, l *logger.Logger, opts Options) *Services {
	if l == nil {
		l = logger.NewNop()
	}
	v := validator.New()
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Services{
		Auth:       NewAuthService(client, sess, l),
		User:       NewUserService(client, sess, v, l),
		Calorie:    NewCalorieService(client, v, now, l),
		Statistics: NewStatisticsService(client, l),
		AI:         NewAIService(client, opts.Advisor, opts.Poll, l),
	}
}

// validate runs struct validation and reports failures as encoding errors,
// since the request never reaches the wire.
func validate(v *validator.Validate, req any) error {
	if err := v.Struct(req); err != nil {
		return api.EncodingError(err)
	}
	return nil
}

func today(now func() time.Time) string {
	return now().Format(dateLayout)
}
