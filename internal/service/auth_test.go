package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
)

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": dataHandler(map[string]any{
			"token":        "jwt-1",
			"isFirstLogin": true,
			"userInfo":     map[string]any{"id": 3, "nickname": "kate", "userType": "vip"},
		}),
		"GET /api/calorie/daily": dataHandler(map[string]any{"targetCalories": 1800}),
	})
	svc, sess := newTestServices(t, f, Options{})

	resp, err := svc.Auth.Login(ctx, "13800000000", "1234", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token != "jwt-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	body := f.lastBody("POST /api/auth/login")
	if body["loginType"] != models.LoginTypePhone || body["phone"] != "13800000000" {
		t.Fatalf("unexpected login body %v", body)
	}
	if f.lastAuth("POST /api/auth/login") != "" {
		t.Fatal("login must not send a bearer token")
	}

	if !svc.Auth.IsLoggedIn(ctx) || !svc.Auth.IsFirstLogin(ctx) || !svc.Auth.IsVIP(ctx) {
		t.Fatal("session flags not persisted")
	}
	if info, ok := sess.UserInfo(ctx); !ok || info.Nickname != "kate" {
		t.Fatalf("user info not cached: %+v", info)
	}

	if _, err := svc.Calorie.GetTodaySummary(ctx); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got := f.lastAuth("GET /api/calorie/daily"); got != "Bearer jwt-1" {
		t.Fatalf("expected stored token on later calls, got %q", got)
	}
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) { writeFailure(w, "bad code") },
	})
	svc, _ := newTestServices(t, f, Options{})

	_, err := svc.Auth.Login(ctx, "1", "0000", models.LoginTypePhone)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.KindServerError || apiErr.Message != "bad code" {
		t.Fatalf("expected server error, got %v", err)
	}
	if svc.Auth.IsLoggedIn(ctx) {
		t.Fatal("failed login stored a token")
	}
}

func TestLogoutClearsSessionRegardless(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr bool
	}{
		{"server accepts", dataHandler(map[string]any{"success": true}), false},
		{"server fails", func(w http.ResponseWriter, r *http.Request) { writeFailure(w, "boom") }, true},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			f := newFakeAPI(t, map[string]http.HandlerFunc{"POST /api/auth/logout": tt.handler})
			svc, sess := newTestServices(t, f, Options{})
			sess.SaveLogin(ctx, models.LoginResponse{Token: "jwt", UserInfo: &models.UserInfo{ID: 1}})

			_, err := svc.Auth.Logout(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if f.lastAuth("POST /api/auth/logout") != "Bearer jwt" {
				t.Fatal("logout must be sent with the current token")
			}
			if svc.Auth.IsLoggedIn(ctx) {
				t.Fatal("token survived logout")
			}
			if _, ok := svc.Auth.CurrentUserInfo(ctx); ok {
				t.Fatal("user info survived logout")
			}
		})
	}
}

func TestRefreshTokenOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"GET /api/auth/refresh": dataHandler(map[string]any{"token": "new", "expiresIn": 3600}),
	})
	svc, sess := newTestServices(t, f, Options{})
	sess.SetToken(ctx, "old")

	if _, err := svc.Auth.RefreshToken(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if f.lastAuth("GET /api/auth/refresh") != "Bearer old" {
		t.Fatal("refresh must authenticate with the old token")
	}
	if token, _ := sess.Token(ctx); token != "new" {
		t.Fatalf("expected new token, got %q", token)
	}
}

func TestAppleLoginSendsAuthorizationCodeWhenSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"POST /api/auth/login/apple": dataHandler(map[string]any{"token": "a"}),
	})
	svc, _ := newTestServices(t, f, Options{})

	if _, err := svc.Auth.AppleLogin(ctx, "id-token", ""); err != nil {
		t.Fatalf("apple login: %v", err)
	}
	if _, ok := f.lastBody("POST /api/auth/login/apple")["authorizationCode"]; ok {
		t.Fatal("empty authorization code was sent")
	}
	if _, err := svc.Auth.AppleLogin(ctx, "id-token", "auth-code"); err != nil {
		t.Fatalf("apple login: %v", err)
	}
	if got := f.lastBody("POST /api/auth/login/apple")["authorizationCode"]; got != "auth-code" {
		t.Fatalf("unexpected authorization code %v", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, nil)
	svc, sess := newTestServices(t, f, Options{})

	if _, ok := svc.Auth.TokenExpiry(ctx); ok {
		t.Fatal("expected no expiry without a token")
	}

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sess.SetToken(ctx, token)

	got, ok := svc.Auth.TokenExpiry(ctx)
	if !ok || !got.Equal(exp) {
		t.Fatalf("unexpected expiry %v ok=%v", got, ok)
	}

	sess.SetToken(ctx, "opaque")
	if _, ok := svc.Auth.TokenExpiry(ctx); ok {
		t.Fatal("expected no expiry for a non-JWT token")
	}
	if !svc.Auth.IsLoggedIn(ctx) {
		t.Fatal("an opaque token still counts as logged in")
	}
}
