package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/internal/session"
	"daily-energy/pkg/logger"
)

type AuthService struct {
	client  *api.Client
	session *session.Session
	logger  *logger.Logger
}

func NewAuthService(client *api.Client, sess *session.Session, l *logger.Logger) *AuthService {
	return &AuthService{client: client, session: sess, logger: l}
}

func (s *AuthService) SendCode(ctx context.Context, phone string) (models.SendCodeResponse, error) {
	return api.Do[models.SendCodeResponse](ctx, s.client, api.SendCode{Phone: phone})
}

// Login signs in with a phone code. An empty loginType means phone login.
func (s *AuthService) Login(ctx context.Context, phone, code, loginType string) (models.LoginResponse, error) {
	if loginType == "" {
		loginType = models.LoginTypePhone
	}
	return s.login(ctx, api.Login{Phone: phone, Code: code, LoginType: loginType})
}

func (s *AuthService) WechatLogin(ctx context.Context, code string) (models.LoginResponse, error) {
	return s.login(ctx, api.WechatLogin{Code: code})
}

// AppleLogin sends authorizationCode only when it is non-empty.
func (s *AuthService) AppleLogin(ctx context.Context, identityToken, authorizationCode string) (models.LoginResponse, error) {
	e := api.AppleLogin{IdentityToken: identityToken}
	if authorizationCode != "" {
		e.AuthorizationCode = &authorizationCode
	}
	return s.login(ctx, e)
}

func (s *AuthService) login(ctx context.Context, e api.Endpoint) (models.LoginResponse, error) {
	resp, err := api.Do[models.LoginResponse](ctx, s.client, e)
	if err != nil {
		return resp, err
	}
	s.session.SaveLogin(ctx, resp)
	s.logger.Infow("User logged in", "firstLogin", resp.IsFirstLogin)
	return resp, nil
}

func (s *AuthService) RefreshToken(ctx context.Context) (models.RefreshTokenResponse, error) {
	resp, err := api.Do[models.RefreshTokenResponse](ctx, s.client, api.RefreshToken{})
	if err != nil {
		return resp, err
	}
	s.session.SetToken(ctx, resp.Token)
	return resp, nil
}

// Logout clears the local session whatever the server answers.
func (s *AuthService) Logout(ctx context.Context) (models.LogoutResponse, error) {
	resp, err := api.Do[models.LogoutResponse](ctx, s.client, api.Logout{})
	s.session.Clear(ctx)
	if err != nil {
		s.logger.Warnw("Logout request failed, local session cleared anyway", "error", err)
	}
	return resp, err
}

// IsLoggedIn only checks that a token is stored, not that it is still valid.
func (s *AuthService) IsLoggedIn(ctx context.Context) bool {
	_, ok := s.session.Token(ctx)
	return ok
}

func (s *AuthService) IsFirstLogin(ctx context.Context) bool {
	return s.session.IsFirstLogin(ctx)
}

func (s *AuthService) IsVIP(ctx context.Context) bool {
	return s.session.UserType(ctx) == models.UserTypeVIP
}

func (s *AuthService) CurrentUserInfo(ctx context.Context) (*models.UserInfo, bool) {
	return s.session.UserInfo(ctx)
}

// TokenExpiry reads the exp claim of the stored token without verifying the
// signature. It is for display only.
func (s *AuthService) TokenExpiry(ctx context.Context) (time.Time, bool) {
	token, ok := s.session.Token(ctx)
	if !ok {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
