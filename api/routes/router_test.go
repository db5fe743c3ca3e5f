package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pitb-dev/wwh-gateway/internal/identity"
	"github.com/pitb-dev/wwh-gateway/internal/progress"
	"github.com/pitb-dev/wwh-gateway/internal/registration"
	pkgAuth "github.com/pitb-dev/wwh-gateway/pkg/auth"
	"github.com/pitb-dev/wwh-gateway/pkg/auth/session"
	"github.com/pitb-dev/wwh-gateway/pkg/config"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
	"github.com/pitb-dev/wwh-gateway/pkg/redis"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

type fakeSessionManager struct {
	sessions map[string]session.CurrentUser
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: map[string]session.CurrentUser{}}
}

func (f *fakeSessionManager) Create(ctx context.Context, user session.CurrentUser) (string, error) {
	accessID := session.NewAccessID()
	f.sessions[accessID] = user
	return accessID, nil
}

func (f *fakeSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	_, ok := f.sessions[accessID]
	return ok, nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(f.sessions, accessID)
	return nil
}

type fakeResolver struct{ id int64 }

func (f *fakeResolver) Resolve(ctx context.Context, userID string) (int64, error) {
	return f.id, nil
}

type fakeProgress struct{}

func (fakeProgress) Snapshot(ctx context.Context, userID string) (progress.Snapshot, error) {
	return progress.Empty(), nil
}

func newTestRouter(t *testing.T, manager *fakeSessionManager, cfg *config.Config) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":42}}`))
	}))
	t.Cleanup(backend.Close)

	upstreamClient, err := upstream.NewClient(config.UpstreamConfig{BaseURL: backend.URL, Timeout: time.Second}, logg)
	if err != nil {
		t.Fatalf("new upstream client: %v", err)
	}
	registrationService, err := registration.NewService(upstreamClient)
	if err != nil {
		t.Fatalf("new registration service: %v", err)
	}

	var resolver identity.Service = &fakeResolver{id: 42}

	return NewRouter(
		cfg,
		logg,
		&redis.Client{},
		upstreamClient,
		manager,
		resolver,
		registrationService,
		fakeProgress{},
	)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "wwh-gateway",
			ExpirationMinutes: 30,
		},
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, newFakeSessionManager(), testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-WWH-Env") != "dev" {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-WWH-Env"))
	}
}

func TestRegistrationRequiresAuth(t *testing.T) {
	router := newTestRouter(t, newFakeSessionManager(), testConfig())

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/registration/identity"},
		{http.MethodGet, "/api/v1/registration/personal"},
		{http.MethodPost, "/api/v1/registration/employment"},
		{http.MethodGet, "/api/v1/registration/progress"},
	}
	for _, tt := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tt.method, tt.path, rec.Code)
		}
	}
}

func TestSessionFlowEndToEnd(t *testing.T) {
	cfg := testConfig()
	manager := newFakeSessionManager()
	router := newTestRouter(t, manager, cfg)

	// Create a session.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"id":"user-9"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	token := envelope.Data.AccessToken

	// Authenticated identity resolution.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/registration/identity", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("identity: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"personal_id":42`) {
		t.Fatalf("expected personal_id in body: %s", rec.Body.String())
	}

	// Revoke and verify the token stops working.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/registration/identity", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after revoke, got %d", rec.Code)
	}
}

func TestRejectsForgedToken(t *testing.T) {
	router := newTestRouter(t, newFakeSessionManager(), testConfig())

	forged, err := pkgAuth.MintAccessToken(config.JWTConfig{
		Secret:            "other-secret",
		Issuer:            "wwh-gateway",
		ExpirationMinutes: 30,
	}, time.Now(), pkgAuth.AccessTokenPayload{UserID: "user-9"})
	if err != nil {
		t.Fatalf("mint forged token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/registration/identity", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", rec.Code)
	}
}
