package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"daily-energy/internal/api"
	"daily-energy/internal/session"
	"daily-energy/internal/store"
)

// fakeAPI serves canned handlers keyed by "METHOD /path" and records every
// request body it sees.
type fakeAPI struct {
	*httptest.Server

	mu     sync.Mutex
	calls  map[string]int
	bodies map[string][]map[string]any
	auth   map[string]string
}

func newFakeAPI(t *testing.T, routes map[string]http.HandlerFunc) *fakeAPI {
	t.Helper()

	f := &fakeAPI{
		calls:  make(map[string]int),
		bodies: make(map[string][]map[string]any),
		auth:   make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))
		var body map[string]any
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		f.mu.Lock()
		f.calls[key]++
		f.bodies[key] = append(f.bodies[key], body)
		f.auth[key] = r.Header.Get("Authorization")
		f.mu.Unlock()

		h, ok := routes[key]
		if !ok {
			t.Errorf("unexpected request %s", key)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeAPI) lastBody(key string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.bodies[key]
	if len(b) == 0 {
		return nil
	}
	return b[len(b)-1]
}

func (f *fakeAPI) lastAuth(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth[key]
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    200,
		"success": true,
		"message": "ok",
		"data":    data,
	})
}

func writeFailure(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    500,
		"success": false,
		"message": message,
	})
}

func dataHandler(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeData(w, data) }
}

func newTestServices(t *testing.T, f *fakeAPI, opts Options) (*Services, *session.Session) {
	t.Helper()

	sess := session.New(store.NewMemory(), nil)
	client := api.NewClient(api.ClientConfig{
		BaseURL:          f.URL + "/api",
		HTTPClient:       f.Client(),
		UploadHTTPClient: f.Client(),
	}, sess, nil)
	if opts.Poll.Interval == 0 {
		opts.Poll.Interval = time.Millisecond
	}
	return New(client, sess, nil, opts), sess
}
