package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
)

func TestDeleteAccountClearsOnlyOnSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantOK    bool
		wantErr   bool
		wantClear bool
	}{
		{"confirmed", dataHandler(map[string]any{"success": true}), true, false, true},
		{"refused", dataHandler(map[string]any{"success": false, "message": "pending orders"}), false, false, false},
		{"server error", func(w http.ResponseWriter, r *http.Request) { writeFailure(w, "boom") }, false, true, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			f := newFakeAPI(t, map[string]http.HandlerFunc{"DELETE /api/user/account": tt.handler})
			svc, sess := newTestServices(t, f, Options{})
			sess.SaveLogin(ctx, models.LoginResponse{Token: "jwt"})

			ok, err := svc.User.DeleteAccount(ctx)
			if (err != nil) != tt.wantErr || ok != tt.wantOK {
				t.Fatalf("got ok=%v err=%v", ok, err)
			}
			if _, loggedIn := sess.Token(ctx); loggedIn == tt.wantClear {
				t.Fatalf("expected cleared=%v, token present=%v", tt.wantClear, loggedIn)
			}
		})
	}
}

func TestUpdateUserProfileOmitsZeroFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"PUT /api/user/profile": dataHandler(map[string]any{"id": 1, "nickname": "kate", "age": 30}),
	})
	svc, _ := newTestServices(t, f, Options{})

	got, err := svc.User.UpdateUserProfile(ctx, models.UserProfile{Nickname: "kate", Age: 30})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Nickname != "kate" {
		t.Fatalf("unexpected profile %+v", got)
	}

	body := f.lastBody("PUT /api/user/profile")
	if len(body) != 2 || body["nickname"] != "kate" || body["age"] != float64(30) {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUpdateUserInfoRefreshesCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"PUT /api/user/profile": dataHandler(map[string]any{"id": 1, "nickname": "new", "userType": "vip"}),
	})
	svc, sess := newTestServices(t, f, Options{})
	sess.SaveUserInfo(ctx, models.UserInfo{ID: 1, Nickname: "old", UserType: models.UserTypeNormal})

	name := "new"
	if _, err := svc.User.UpdateUserInfo(ctx, models.UserUpdateRequest{Nickname: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	info, ok := svc.User.CachedUserInfo(ctx)
	if !ok || info.Nickname != "new" {
		t.Fatalf("cache not refreshed: %+v", info)
	}
	if !svc.Auth.IsVIP(ctx) {
		t.Fatal("user type not refreshed")
	}
}

func TestInvalidRequestIsNotSent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, nil)
	svc, _ := newTestServices(t, f, Options{})

	age := 400
	_, err := svc.User.UpdateUserInfo(ctx, models.UserUpdateRequest{Age: &age})
	if !errors.Is(err, api.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}

	_, err = svc.Calorie.AddFoodIntake(ctx, models.FoodIntakeRequest{FoodName: "rice", Weight: 100, MealType: "brunch", RecordTime: "2024-01-01"})
	if !errors.Is(err, api.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
}

func TestWeightRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFakeAPI(t, map[string]http.HandlerFunc{
		"GET /api/user/weight-records": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id":1,"weight":70.5,"recordDate":"2024-01-01"},{"id":"x"},{"id":2,"weight":70.1,"recordDate":"2024-01-02"}]`))
		},
		"POST /api/user/weight-records":     dataHandler(map[string]any{"id": 3, "weight": 69.8}),
		"PUT /api/user/weight-records/3":    dataHandler(map[string]any{"id": 3, "weight": 69.9}),
		"DELETE /api/user/weight-records/3": dataHandler(map[string]any{"success": true}),
	})
	svc, _ := newTestServices(t, f, Options{})

	records, err := svc.User.GetWeightRecords(ctx, "2024-01-01", "2024-01-31")
	if err != nil || len(records) != 2 {
		t.Fatalf("unexpected records %+v err=%v", records, err)
	}

	rec, err := svc.User.AddWeightRecord(ctx, 69.8, "2024-02-01")
	if err != nil || rec.ID != 3 {
		t.Fatalf("add: %+v %v", rec, err)
	}
	if body := f.lastBody("POST /api/user/weight-records"); body["recordDate"] != "2024-02-01" || body["weight"] != 69.8 {
		t.Fatalf("unexpected add body %v", body)
	}

	if rec, err = svc.User.UpdateWeightRecord(ctx, 3, 69.9); err != nil || rec.Weight != 69.9 {
		t.Fatalf("update: %+v %v", rec, err)
	}

	ok, err := svc.User.DeleteWeightRecord(ctx, 3)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
}
