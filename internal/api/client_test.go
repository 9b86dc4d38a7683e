package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"daily-energy/internal/models"
)

type staticTokens string

func (s staticTokens) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

func newTestClient(ts *httptest.Server, tokens TokenSource) *Client {
	return NewClient(ClientConfig{
		BaseURL:          ts.URL + "/api",
		HTTPClient:       ts.Client(),
		UploadHTTPClient: ts.Client(),
		DeviceID:         "device-1",
	}, tokens, nil)
}

func TestDoUnwrapsEnvelopeAndSetsHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod, gotAuth, gotAccept, gotDevice string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotDevice = r.Header.Get("X-Device-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"code":200,"success":true,"message":"ok","data":{"id":5,"calories":320,"recordType":"food"}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, staticTokens("tok"))
	rec, err := Do[models.CalorieRecord](context.Background(), c, AddFoodIntake{Request: models.FoodIntakeRequest{
		FoodName: "rice", Weight: 150, Calories: 200, MealType: "lunch", RecordTime: "2024-01-01",
	}})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if rec.ID != 5 || rec.Calories != 320 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if gotPath != "/api/calorie/record" || gotMethod != http.MethodPost {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotAccept != "application/json" || gotDevice != "device-1" {
		t.Fatalf("unexpected headers accept=%q device=%q", gotAccept, gotDevice)
	}
	if gotBody["foodName"] != "rice" || gotBody["mealType"] != "lunch" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestDoWithoutTokenOmitsAuthorization(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var sawHeader bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"code":200,"success":true,"data":{"basalMetabolism":1500}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, staticTokens(""))
	if _, err := Do[models.TodaySummary](context.Background(), c, GetTodaySummary{}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if sawHeader || gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestDoSkipsTokenForPublicEndpoints(t *testing.T) {
	t.Parallel()

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"code":200,"success":true,"data":{"success":true}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, staticTokens("tok"))
	if _, err := Do[models.SendCodeResponse](context.Background(), c, SendCode{Phone: "1"}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("public endpoint sent Authorization %q", gotAuth)
	}
}

func TestDoWithNilParamsSendsNoBody(t *testing.T) {
	t.Parallel()

	var body []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"code":200,"success":true,"data":{}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, nil)
	if _, err := Do[models.Statistics](context.Background(), c, GetGoalAchievement{}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %q", body)
	}
}

func TestDoErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		kind    ErrorKind
		message string
	}{
		{"server error envelope", 200, `{"code":500,"success":false,"message":"x"}`, KindServerError, "x"},
		{"success flag without code 200", 200, `{"code":201,"success":true,"data":{}}`, KindServerError, ""},
		{"code 200 without success flag", 200, `{"code":200,"success":false,"message":"nope"}`, KindServerError, "nope"},
		{"not json", 200, `<html>`, KindDecodingError, ""},
		{"missing data", 200, `{"code":200,"success":true}`, KindDecodingError, ""},
		{"null data", 200, `{"code":200,"success":true,"data":null}`, KindDecodingError, ""},
		{"wrong data shape", 200, `{"code":200,"success":true,"data":"text"}`, KindDecodingError, ""},
		{"unauthorized", 401, `{"code":401,"success":false,"message":"expired"}`, KindUnauthorized, ""},
		{"forbidden", 403, `forbidden`, KindForbidden, ""},
		{"not found", 404, ``, KindNotFound, ""},
		{"server 500 with envelope", 500, `{"code":500,"success":false,"message":"boom"}`, KindServerError, "boom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := Do[models.UserInfo](context.Background(), newTestClient(ts, nil), GetUserProfile{})
			if KindOf(err) != tt.kind {
				t.Fatalf("expected %v, got %v (%v)", tt.kind, KindOf(err), err)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, apiErr.Message)
			}
		})
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	t.Parallel()

	info, err := UnwrapEnvelope[models.UserInfo]([]byte(`{"code":200,"success":true,"data":{"id":1,"nickname":"a"}}`))
	if err != nil || info.ID != 1 || info.Nickname != "a" {
		t.Fatalf("unexpected result %+v, %v", info, err)
	}

	_, err = UnwrapEnvelope[models.UserInfo]([]byte(`{"code":500,"success":false,"message":"x"}`))
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if err.Error() != "server error: x" {
		t.Fatalf("unexpected text %q", err.Error())
	}

	for _, body := range []string{"null", " null\n", ""} {
		_, err = UnwrapEnvelope[models.UserInfo]([]byte(body))
		if KindOf(err) != KindDecodingError {
			t.Fatalf("body %q: expected decoding error, got %v", body, err)
		}
	}
}

func TestDoArrayDropsMalformedElements(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"apple"},{"id":"bad"},null,{"id":3,"name":"pear"}]`))
	}))
	defer ts.Close()

	foods, err := DoArray[models.FoodInfo](context.Background(), newTestClient(ts, nil), SearchFood{Keyword: "fruit"})
	if err != nil {
		t.Fatalf("do array: %v", err)
	}
	if len(foods) != 2 || foods[0].ID != 1 || foods[1].ID != 3 {
		t.Fatalf("unexpected foods %+v", foods)
	}
}

func TestDoArrayRejectsNonArray(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"success":true,"data":[]}`))
	}))
	defer ts.Close()

	_, err := DoArray[models.FoodInfo](context.Background(), newTestClient(ts, nil), SearchFood{Keyword: "x"})
	if !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected decoding error, got %v", err)
	}
}

func TestUploadSendsMultipart(t *testing.T) {
	t.Parallel()

	var fileName, fileType, fileBody, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		raw, _ := io.ReadAll(f)
		fileName, fileType, fileBody = header.Filename, header.Header.Get("Content-Type"), string(raw)
		_, _ = w.Write([]byte(`{"code":200,"success":true,"data":{"url":"http://cdn/x.jpg","fileName":"x.jpg","fileSize":3}}`))
	}))
	defer ts.Close()

	resp, err := Upload[models.UploadResponse](context.Background(), newTestClient(ts, staticTokens("tok")),
		UploadImage{}, []byte("img"), "image.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.URL != "http://cdn/x.jpg" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if fileName != "image.jpg" || fileType != "image/jpeg" || fileBody != "img" {
		t.Fatalf("unexpected part %q %q %q", fileName, fileType, fileBody)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}

func TestTransportErrors(t *testing.T) {
	t.Parallel()

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer ts.Close()
		defer close(release)

		hc := ts.Client()
		hc.Timeout = 50 * time.Millisecond
		c := NewClient(ClientConfig{BaseURL: ts.URL, HTTPClient: hc}, nil, nil)

		_, err := Do[models.TodaySummary](context.Background(), c, GetTodaySummary{})
		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("expected timeout, got %v", err)
		}
	})

	t.Run("network", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.NotFoundHandler())
		base := ts.URL
		ts.Close()

		c := NewClient(ClientConfig{BaseURL: base}, nil, nil)
		_, err := Do[models.TodaySummary](context.Background(), c, GetTodaySummary{})
		if !errors.Is(err, ErrNetwork) {
			t.Fatalf("expected network error, got %v", err)
		}
		if KindOf(err).Code() != -1005 {
			t.Fatalf("unexpected code %d", KindOf(err).Code())
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		c := NewClient(ClientConfig{BaseURL: "not a url"}, nil, nil)
		_, err := Do[models.TodaySummary](context.Background(), c, GetTodaySummary{})
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected invalid URL, got %v", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.NotFoundHandler())
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Do[models.TodaySummary](ctx, newTestClient(ts, nil), GetTodaySummary{})
		if !errors.Is(err, ErrUnknown) {
			t.Fatalf("expected unknown, got %v", err)
		}
	})
}

func TestEncodingError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer ts.Close()

	_, err := Do[models.WeightRecord](context.Background(), newTestClient(ts, nil), AddWeightRecord{Weight: math.NaN(), Date: "2024-01-01"})
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to encode request") {
		t.Fatalf("unexpected text %q", err.Error())
	}
}
