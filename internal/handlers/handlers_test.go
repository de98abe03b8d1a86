package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portfoliopal/api/internal/ai"
	"portfoliopal/api/internal/config"
	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/repository"
	"portfoliopal/api/internal/security"
	"portfoliopal/api/internal/service"
	"portfoliopal/api/internal/store"
)

const testSecret = "handlers-test-secret"

type fakeDirectory struct {
	users map[string]models.User
}

func (f fakeDirectory) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f fakeDirectory) ListRecent(_ context.Context, _ int64) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

type fakeActivityLog struct {
	entries []models.Activity
}

func (f fakeActivityLog) ListRecent(_ context.Context, _ int64) ([]models.Activity, error) {
	return f.entries, nil
}

// newTestEngine wires a HandlerSet with the template generator and no
// backing store. Routes that need persistence are not exercised here; the
// service tests cover those flows against fakes.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	return newAuthedEngine(t, "", fakeDirectory{}, fakeActivityLog{})
}

// newAuthedEngine wires a HandlerSet over fake read repositories so routes
// behind the auth middleware can be exercised without a database. Write
// flows stay covered by the service tests against their own fakes.
func newAuthedEngine(t *testing.T, adminEmail string, users fakeDirectory, activity fakeActivityLog) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Auth: config.AuthConfig{SecretKey: testSecret, AccessTokenExpireMinutes: 60},
	}

	h := HandlerSet{
		log:       zerolog.Nop(),
		cfg:       cfg,
		gate:      service.NewAdminGate(adminEmail),
		throttle:  service.NewLoginThrottle(nil, cfg.Throttle, zerolog.Nop()),
		generator: ai.TemplateFallback{},
		users:     users,
		activity:  activity,
	}

	engine := gin.New()
	h.Register(engine)
	return engine
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := security.GenerateSessionToken(testSecret, user.ID, user.Email, "", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func TestRoot(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "PortfolioPal API is running.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestHello(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Hello from PortfolioPal backend!") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestProjectWriter_FallbackResult(t *testing.T) {
	r := newTestEngine(t)

	body := `{"title":"Weather CLI","description":"A terminal weather client.","technologies":["Go"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/ai/project-writer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "[AI Fallback] ") {
		t.Fatalf("expected fallback disclaimer in result: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Title: Weather CLI") {
		t.Fatalf("expected prompt echo in result: %s", w.Body.String())
	}
}

func TestProjectWriter_MissingFields(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/project-writer", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing description, got %d", w.Code)
	}
}

func TestPortfolio_FallbackResult(t *testing.T) {
	r := newTestEngine(t)

	body := `{"name":"Alice","role":"Backend Engineer","summary":"Ships reliable services.","skills":["Go"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/ai/portfolio", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Name: Alice") {
		t.Fatalf("expected prompt echo in result: %s", w.Body.String())
	}
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	r := newTestEngine(t)

	body := `{"email":"a@x.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", w.Code)
	}
}

func TestLogin_RejectsMissingForm(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("username=a@x.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestMe_Unauthorized(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", w.Code)
	}
}

const storedHash = "$argon2id$v=19$t=3,m=65536,p=2$c2FsdHNhbHRzYWx0c2E$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g"

func TestMe_OmitsPasswordHash(t *testing.T) {
	user := models.User{ID: "usr_1", Email: "alice@example.com", PasswordHash: storedHash, Name: "Alice"}
	r := newAuthedEngine(t, "", fakeDirectory{users: map[string]models.User{user.ID: user}}, fakeActivityLog{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", bearerToken(t, user))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "alice@example.com") {
		t.Fatalf("expected user email in response: %s", body)
	}
	if strings.Contains(body, storedHash) {
		t.Fatalf("password hash leaked into response: %s", body)
	}
	if strings.Contains(body, "password") {
		t.Fatalf("password field leaked into response: %s", body)
	}
}

func TestAdminOverview_OmitsPasswordHashes(t *testing.T) {
	admin := models.User{ID: "usr_admin", Email: "admin@example.com", PasswordHash: storedHash, Name: "Admin"}
	other := models.User{ID: "usr_2", Email: "bob@example.com", PasswordHash: storedHash, Name: "Bob"}
	dir := fakeDirectory{users: map[string]models.User{admin.ID: admin, other.ID: other}}
	log := fakeActivityLog{entries: []models.Activity{{ID: "act_1", UserID: other.ID, Type: "login"}}}

	r := newAuthedEngine(t, admin.Email, dir, log)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
	req.Header.Set("Authorization", bearerToken(t, admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, email := range []string{admin.Email, other.Email} {
		if !strings.Contains(body, email) {
			t.Fatalf("expected %s in overview: %s", email, body)
		}
	}
	if !strings.Contains(body, `"type":"login"`) {
		t.Fatalf("expected activity entry in overview: %s", body)
	}
	if strings.Contains(body, storedHash) {
		t.Fatalf("password hash leaked into overview: %s", body)
	}
	if strings.Contains(body, "password") {
		t.Fatalf("password field leaked into overview: %s", body)
	}
}

func TestStatus_ReportsCacheDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	opts := options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(50 * time.Millisecond).
		SetConnectTimeout(50 * time.Millisecond)
	client, err := mongo.Connect(opts)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	cfg := &config.AppConfig{
		Auth:     config.AuthConfig{SecretKey: testSecret, AccessTokenExpireMinutes: 60},
		Database: config.DatabaseConfig{URL: "mongodb://127.0.0.1:1", Name: "status_test"},
	}
	h := HandlerSet{
		log:       zerolog.Nop(),
		cfg:       cfg,
		gate:      service.NewAdminGate(""),
		throttle:  service.NewLoginThrottle(nil, cfg.Throttle, zerolog.Nop()),
		generator: ai.TemplateFallback{},
		store:     store.New(client, cfg.Database.Name),
		users:     fakeDirectory{},
		activity:  fakeActivityLog{},
	}
	engine := gin.New()
	h.Register(engine)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"cache":"disabled"`) {
		t.Fatalf("expected cache reported as disabled without a client: %s", body)
	}
	if !strings.Contains(body, `"database":"error"`) {
		t.Fatalf("expected database error against unreachable server: %s", body)
	}
}
