// Package session is the local view of the signed-in user. Every front end
// owns one Session per user and hands it to the API client as its token
// source.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"daily-energy/internal/models"
	"daily-energy/internal/store"
	"daily-energy/pkg/logger"
)

type Session struct {
	store  store.Store
	logger *logger.Logger
}

func New(s store.Store, l *logger.Logger) *Session {
	if l == nil {
		l = logger.NewNop()
	}
	return &Session{store: s, logger: l}
}

// Token returns the stored bearer token. A read failure counts as no token.
func (s *Session) Token(ctx context.Context) (string, bool) {
	token, ok := s.get(ctx, store.KeyUserToken)
	return token, ok && token != ""
}

// SetToken replaces the stored token.
func (s *Session) SetToken(ctx context.Context, token string) {
	s.set(ctx, store.KeyUserToken, token)
}

// SaveLogin persists everything a successful login hands back.
func (s *Session) SaveLogin(ctx context.Context, resp models.LoginResponse) {
	s.set(ctx, store.KeyUserToken, resp.Token)
	s.set(ctx, store.KeyIsFirstLogin, strconv.FormatBool(resp.IsFirstLogin))
	if resp.UserInfo != nil {
		s.SaveUserInfo(ctx, *resp.UserInfo)
	}
}

// SaveUserInfo caches info and its user type.
func (s *Session) SaveUserInfo(ctx context.Context, info models.UserInfo) {
	raw, err := json.Marshal(info)
	if err != nil {
		s.logger.Warnw("Failed to encode user info", "error", err)
		return
	}
	s.set(ctx, store.KeyUserInfo, string(raw))
	s.set(ctx, store.KeyUserType, info.UserType)
}

// SetUserType overwrites only the cached user type.
func (s *Session) SetUserType(ctx context.Context, userType string) {
	s.set(ctx, store.KeyUserType, userType)
}

// UserInfo returns the cached user info, if any.
func (s *Session) UserInfo(ctx context.Context) (*models.UserInfo, bool) {
	raw, ok := s.get(ctx, store.KeyUserInfo)
	if !ok {
		return nil, false
	}
	var info models.UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		s.logger.Warnw("Cached user info is corrupt", "error", err)
		return nil, false
	}
	return &info, true
}

func (s *Session) IsFirstLogin(ctx context.Context) bool {
	raw, ok := s.get(ctx, store.KeyIsFirstLogin)
	if !ok {
		return false
	}
	v, _ := strconv.ParseBool(raw)
	return v
}

func (s *Session) UserType(ctx context.Context) string {
	v, _ := s.get(ctx, store.KeyUserType)
	return v
}

// Clear signs the user out locally. Device id and settings are kept.
func (s *Session) Clear(ctx context.Context) {
	err := s.store.Delete(ctx,
		store.KeyUserToken,
		store.KeyUserInfo,
		store.KeyIsFirstLogin,
		store.KeyUserType,
	)
	if err != nil {
		s.logger.Warnw("Failed to clear session", "error", err)
	}
}

// DeviceID returns a stable per-installation id, generating one on first use.
func (s *Session) DeviceID(ctx context.Context) string {
	if id, ok := s.get(ctx, store.KeyDeviceID); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.set(ctx, store.KeyDeviceID, id)
	return id
}

type Settings struct {
	PushToken                string    `json:"pushToken"`
	PushNotificationEnabled  bool      `json:"pushNotificationEnabled"`
	SoundReminderEnabled     bool      `json:"soundReminderEnabled"`
	VibrationReminderEnabled bool      `json:"vibrationReminderEnabled"`
	ReminderTimes            []string  `json:"reminderTimes"`
	TargetCalories           float64   `json:"targetCalories"`
	TargetWeight             float64   `json:"targetWeight"`
	LastSyncTime             time.Time `json:"lastSyncTime"`
}

// Settings reads the preference keys. Missing or unreadable values are zero.
func (s *Session) Settings(ctx context.Context) Settings {
	var out Settings
	out.PushToken, _ = s.get(ctx, store.KeyPushToken)
	out.PushNotificationEnabled = s.getBool(ctx, store.KeyPushNotificationEnabled)
	out.SoundReminderEnabled = s.getBool(ctx, store.KeySoundReminderEnabled)
	out.VibrationReminderEnabled = s.getBool(ctx, store.KeyVibrationReminderEnabled)
	out.TargetCalories = s.getFloat(ctx, store.KeyTargetCalories)
	out.TargetWeight = s.getFloat(ctx, store.KeyTargetWeight)

	if raw, ok := s.get(ctx, store.KeyReminderTimes); ok {
		if err := json.Unmarshal([]byte(raw), &out.ReminderTimes); err != nil {
			s.logger.Warnw("Stored reminder times are corrupt", "error", err)
		}
	}
	if raw, ok := s.get(ctx, store.KeyLastSyncTime); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			out.LastSyncTime = t
		}
	}
	return out
}

func (s *Session) SaveSettings(ctx context.Context, settings Settings) {
	s.set(ctx, store.KeyPushToken, settings.PushToken)
	s.set(ctx, store.KeyPushNotificationEnabled, strconv.FormatBool(settings.PushNotificationEnabled))
	s.set(ctx, store.KeySoundReminderEnabled, strconv.FormatBool(settings.SoundReminderEnabled))
	s.set(ctx, store.KeyVibrationReminderEnabled, strconv.FormatBool(settings.VibrationReminderEnabled))
	s.set(ctx, store.KeyTargetCalories, strconv.FormatFloat(settings.TargetCalories, 'f', -1, 64))
	s.set(ctx, store.KeyTargetWeight, strconv.FormatFloat(settings.TargetWeight, 'f', -1, 64))

	times := settings.ReminderTimes
	if times == nil {
		times = []string{}
	}
	raw, err := json.Marshal(times)
	if err == nil {
		s.set(ctx, store.KeyReminderTimes, string(raw))
	}
	if !settings.LastSyncTime.IsZero() {
		s.set(ctx, store.KeyLastSyncTime, settings.LastSyncTime.UTC().Format(time.RFC3339))
	}
}

func (s *Session) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warnw("Failed to read preference", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *Session) set(ctx context.Context, key, value string) {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.Warnw("Failed to write preference", "key", key, "error", err)
	}
}

func (s *Session) getBool(ctx context.Context, key string) bool {
	raw, ok := s.get(ctx, key)
	if !ok {
		return false
	}
	v, _ := strconv.ParseBool(raw)
	return v
}

func (s *Session) getFloat(ctx context.Context, key string) float64 {
	raw, ok := s.get(ctx, key)
	if !ok {
		return 0
	}
	v, _ := strconv.ParseFloat(raw, 64)
	return v
}
