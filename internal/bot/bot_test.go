package bot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-energy/internal/api"
	"daily-energy/internal/models"
	"daily-energy/internal/payment"
	"daily-energy/internal/store"
)

type fakeSender struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) GetFileDirectURL(fileID string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeSender) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type recorded struct {
	mu     sync.Mutex
	bodies map[string]map[string]any
}

func (r *recorded) body(key string) map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bodies[key]
}

func newTestBot(t *testing.T, routes map[string]any) (*TelegramBot, *fakeSender, *recorded) {
	t.Helper()

	rec := &recorded{bodies: make(map[string]map[string]any)}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		rec.mu.Lock()
		rec.bodies[key] = body
		rec.mu.Unlock()

		data, ok := routes[key]
		if !ok {
			t.Errorf("unexpected request %s", key)
			http.NotFound(w, r)
			return
		}
		if h, ok := data.(http.HandlerFunc); ok {
			h(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "success": true, "message": "ok", "data": data})
	}))
	t.Cleanup(ts.Close)

	client := api.NewClient(api.ClientConfig{
		BaseURL:          ts.URL + "/api",
		HTTPClient:       ts.Client(),
		UploadHTTPClient: ts.Client(),
	}, nil, nil)

	s := &fakeSender{}
	b := newBot(s, Deps{Client: client, Store: store.NewMemory()})
	b.now = func() time.Time { return time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC) }
	return b, s, rec
}

func command(chatID int64, text string) *tgbotapi.Message {
	cmd := strings.Fields(text)[0]
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	b, s, rec := newTestBot(t, map[string]any{
		"POST /api/auth/send-code": map[string]any{"success": true, "message": "sent", "expiresIn": 300},
		"POST /api/auth/login": map[string]any{
			"token":        "tok-1",
			"isFirstLogin": false,
			"userInfo":     map[string]any{"id": 1, "nickname": "Ann", "userType": "vip"},
		},
	})
	ctx := context.Background()

	b.handleCommand(ctx, command(7, "/code 1234"))
	if !strings.Contains(s.last(), "/login") {
		t.Fatalf("expected login hint, got %q", s.last())
	}

	b.handleCommand(ctx, command(7, "/login +100200"))
	if !strings.Contains(s.last(), "Code sent to +100200") {
		t.Fatalf("unexpected reply %q", s.last())
	}

	b.handleCommand(ctx, command(7, "/code 1234"))
	if s.last() != "Signed in as Ann." {
		t.Fatalf("unexpected reply %q", s.last())
	}
	if got := rec.body("POST /api/auth/login"); got["phone"] != "+100200" || got["code"] != "1234" {
		t.Fatalf("unexpected login body %v", got)
	}

	svc, _ := b.servicesFor(7)
	if !svc.Auth.IsLoggedIn(ctx) || !svc.Auth.IsVIP(ctx) {
		t.Fatal("chat session not populated after login")
	}
	other, _ := b.servicesFor(8)
	if other.Auth.IsLoggedIn(ctx) {
		t.Fatal("login leaked into another chat")
	}
}

func TestCommandsRequireLogin(t *testing.T) {
	t.Parallel()

	b, s, _ := newTestBot(t, nil)
	for _, text := range []string{"/today", "/food rice 100", "/vip"} {
		b.handleCommand(context.Background(), command(3, text))
		if !strings.Contains(s.last(), "sign in first") {
			t.Fatalf("%s: unexpected reply %q", text, s.last())
		}
	}
}

func TestFoodCommand(t *testing.T) {
	t.Parallel()

	b, s, rec := newTestBot(t, map[string]any{
		"POST /api/calorie/record": map[string]any{"id": 5, "recordType": "food", "calories": 250, "recordDate": "2024-03-10"},
	})
	ctx := context.Background()
	_, sess := b.servicesFor(9)
	sess.SetToken(ctx, "tok")

	b.handleCommand(ctx, command(9, "/food green apple 200 dinner"))
	if s.last() != "Logged green apple, 200 g for dinner: 250 kcal." {
		t.Fatalf("unexpected reply %q", s.last())
	}
	body := rec.body("POST /api/calorie/record")
	if body["foodName"] != "green apple" || body["weight"] != 200.0 || body["mealType"] != "dinner" {
		t.Fatalf("unexpected body %v", body)
	}

	b.handleCommand(ctx, command(9, "/food rice 150"))
	if got := rec.body("POST /api/calorie/record")["mealType"]; got != models.MealLunch {
		t.Fatalf("meal type from clock = %v", got)
	}

	b.handleCommand(ctx, command(9, "/food rice lots"))
	if s.last() != "Grams must be a positive number." {
		t.Fatalf("unexpected reply %q", s.last())
	}
}

func TestTodayCommand(t *testing.T) {
	t.Parallel()

	b, s, _ := newTestBot(t, map[string]any{
		"GET /api/calorie/daily": map[string]any{
			"basalMetabolism": 1500, "foodIntake": 800, "exerciseConsumption": 200,
			"remainingCalories": 900, "calorieDeficit": 700, "targetCalories": 1700,
		},
	})
	ctx := context.Background()
	_, sess := b.servicesFor(4)
	sess.SetToken(ctx, "tok")

	b.handleCommand(ctx, command(4, "/today"))
	if !strings.Contains(s.last(), "Eaten: 800 kcal") || !strings.Contains(s.last(), "Remaining: 900 kcal") {
		t.Fatalf("unexpected summary %q", s.last())
	}
}

func TestHandleStripeWebhookRejects(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBot(t, nil)
	b.stripeClient = payment.NewStripeClient(payment.Config{WebhookKey: "whsec_test"})

	tests := []struct {
		name   string
		method string
		sig    string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"missing signature", http.MethodPost, "", http.StatusBadRequest},
		{"bad signature", http.MethodPost, "t=1,v1=deadbeef", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/webhook/stripe", strings.NewReader(`{"type":"checkout.session.completed"}`))
			if tt.sig != "" {
				req.Header.Set("Stripe-Signature", tt.sig)
			}
			rr := httptest.NewRecorder()
			b.HandleStripeWebhook(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestErrorText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{api.ErrUnauthorized, "Your session has expired. Please /login again."},
		{&api.Error{Kind: api.KindServerError, Message: "quota exceeded"}, "quota exceeded"},
		{errors.New("boom"), "Something went wrong. Please try again."},
		{api.ErrNotFound, "Request failed (404): resource not found"},
	}
	for _, tt := range tests {
		if got := errorText(tt.err); got != tt.want {
			t.Errorf("errorText(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMealFor(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		7:  models.MealBreakfast,
		12: models.MealLunch,
		16: models.MealSnack,
		19: models.MealDinner,
		23: models.MealSnack,
	}
	for hour, want := range tests {
		if got := mealFor(hour); got != want {
			t.Errorf("mealFor(%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestFormatRecognition(t *testing.T) {
	t.Parallel()

	got := formatRecognition(models.RecognitionWithCalories{
		Recognition: models.FoodRecognitionResult{
			Confidence: 0.9,
			Foods: []models.RecognizedFood{
				{Name: "rice", Weight: 150, Calories: 100},
				{Name: "egg", Calories: 70},
			},
		},
		Calories: []models.FoodCaloriesResponse{{Calories: 195}, {}},
	})
	for _, want := range []string{"confidence 90%", "- rice, 150 g: 195 kcal", "- egg: 70 kcal", "Total: 265 kcal"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}

	if got := formatRecognition(models.RecognitionWithCalories{}); !strings.Contains(got, "could not find") {
		t.Fatalf("unexpected empty result text %q", got)
	}
}

func TestStopWaitsForVIPRefresh(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	b, s, _ := newTestBot(t, map[string]any{
		"GET /api/user/profile": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 200, "success": true, "message": "ok",
				"data": map[string]any{"id": 1, "nickname": "Ann", "userType": "vip"},
			})
		}),
	})
	_, sess := b.servicesFor(11)
	sess.SetToken(context.Background(), "tok")

	b.startVIPRefresh(payment.Purchase{SessionID: "cs_1", ChatID: 11})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := b.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Stop returned %v before the refresh finished", err)
	}

	close(release)
	if err := b.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.Contains(s.last(), "Welcome to VIP, Ann") {
		t.Fatalf("unexpected reply %q", s.last())
	}
	if sess.UserType(context.Background()) != models.UserTypeVIP {
		t.Fatal("user type not refreshed")
	}
}
