package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/internal/session"
	"daily-energy/pkg/logger"
)

const (
	avatarFilename = "avatar.jpg"
	jpegMIME       = "image/jpeg"
)

type UserService struct {
	client    *api.Client
	session   *session.Session
	validator *validator.Validate
	logger    *logger.Logger
}

func NewUserService(client *api.Client, sess *session.Session, v *validator.Validate, l *logger.Logger) *UserService {
	return &UserService{client: client, session: sess, validator: v, logger: l}
}

// GetUserInfo fetches the profile endpoint in its short UserInfo form.
func (s *UserService) GetUserInfo(ctx context.Context) (models.UserInfo, error) {
	return api.Do[models.UserInfo](ctx, s.client, api.GetUserProfile{})
}

// UpdateUserInfo sends the set fields of req and refreshes the cached user info.
func (s *UserService) UpdateUserInfo(ctx context.Context, req models.UserUpdateRequest) (models.UserInfo, error) {
	if err := validate(s.validator, req); err != nil {
		return models.UserInfo{}, err
	}
	info, err := api.Do[models.UserInfo](ctx, s.client, api.UpdateUserProfile{Request: req})
	if err != nil {
		return info, err
	}
	s.session.SaveUserInfo(ctx, info)
	return info, nil
}

func (s *UserService) GetUserProfile(ctx context.Context) (models.UserProfile, error) {
	return api.Do[models.UserProfile](ctx, s.client, api.GetUserProfile{})
}

// UpdateUserProfile treats zero-valued fields of profile as not set.
func (s *UserService) UpdateUserProfile(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	req := profileUpdate(profile)
	if err := validate(s.validator, req); err != nil {
		return models.UserProfile{}, err
	}
	return api.Do[models.UserProfile](ctx, s.client, api.UpdateUserProfile{Request: req})
}

func profileUpdate(p models.UserProfile) models.UserUpdateRequest {
	var req models.UserUpdateRequest
	if p.Nickname != "" {
		req.Nickname = &p.Nickname
	}
	if p.Gender != 0 {
		req.Gender = &p.Gender
	}
	if p.Age != 0 {
		req.Age = &p.Age
	}
	if p.Height != 0 {
		req.Height = &p.Height
	}
	if p.Weight != 0 {
		req.Weight = &p.Weight
	}
	if p.TargetWeight != 0 {
		req.TargetWeight = &p.TargetWeight
	}
	if p.ActivityLevel != "" {
		req.ActivityLevel = &p.ActivityLevel
	}
	return req
}

func (s *UserService) UploadAvatar(ctx context.Context, image []byte) (models.UploadResponse, error) {
	return api.Upload[models.UploadResponse](ctx, s.client, api.UploadAvatar{}, image, avatarFilename, jpegMIME)
}

// DeleteAccount clears the local session only when the server confirms.
func (s *UserService) DeleteAccount(ctx context.Context) (bool, error) {
	resp, err := api.Do[models.DeleteResponse](ctx, s.client, api.DeleteAccount{})
	if err != nil {
		return false, err
	}
	if resp.Success {
		s.session.Clear(ctx)
		s.logger.Infow("Account deleted, local session cleared")
	}
	return resp.Success, nil
}

func (s *UserService) GetUserGoal(ctx context.Context) (models.UserGoal, error) {
	return api.Do[models.UserGoal](ctx, s.client, api.GetUserGoal{})
}

func (s *UserService) UpdateUserGoal(ctx context.Context, goal models.UserGoal) (models.UserGoal, error) {
	if err := validate(s.validator, goal); err != nil {
		return models.UserGoal{}, err
	}
	return api.Do[models.UserGoal](ctx, s.client, api.UpdateUserGoal{Goal: goal})
}

func (s *UserService) GetWeightRecords(ctx context.Context, startDate, endDate string) ([]models.WeightRecord, error) {
	return api.DoArray[models.WeightRecord](ctx, s.client, api.GetWeightRecords{StartDate: startDate, EndDate: endDate})
}

func (s *UserService) AddWeightRecord(ctx context.Context, weight float64, date string) (models.WeightRecord, error) {
	return api.Do[models.WeightRecord](ctx, s.client, api.AddWeightRecord{Weight: weight, Date: date})
}

func (s *UserService) UpdateWeightRecord(ctx context.Context, recordID int64, weight float64) (models.WeightRecord, error) {
	return api.Do[models.WeightRecord](ctx, s.client, api.UpdateWeightRecord{RecordID: recordID, Weight: weight})
}

func (s *UserService) DeleteWeightRecord(ctx context.Context, recordID int64) (bool, error) {
	resp, err := api.Do[models.DeleteResponse](ctx, s.client, api.DeleteWeightRecord{RecordID: recordID})
	return resp.Success, err
}

// CachedUserInfo reads the user info saved by the last login or update.
func (s *UserService) CachedUserInfo(ctx context.Context) (*models.UserInfo, bool) {
	return s.session.UserInfo(ctx)
}
