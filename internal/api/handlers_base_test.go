// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/shopping"
)

const testPassword = "Tomato-Basil-42"

// testDBSemaphore serializes DuckDB usage across tests in this package.
var testDBSemaphore = make(chan struct{}, 1)

// recordingEmitter keeps every emitted activity.
type recordingEmitter struct {
	mu  sync.Mutex
	got []*events.Activity
}

func (e *recordingEmitter) Emit(_ context.Context, a *events.Activity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.got = append(e.got, a)
}

func (e *recordingEmitter) types() []events.Type {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]events.Type, len(e.got))
	for i, a := range e.got {
		out[i] = a.Type
	}
	return out
}

func (e *recordingEmitter) has(t events.Type) bool {
	for _, got := range e.types() {
		if got == t {
			return true
		}
	}
	return false
}

type testServer struct {
	t       *testing.T
	db      *database.DB
	cfg     *config.Config
	handler http.Handler
	events  *recordingEmitter
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB"},
		API: config.APIConfig{
			DefaultPageSize: 6,
			MaxPageSize:     100,
			MediaURL:        "/media/",
			MediaDir:        t.TempDir(),
			MaxImageBytes:   1 << 20,
		},
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret-with-at-least-thirty-two-chars",
			TokenTTL:          time.Hour,
			RateLimitDisabled: true,
			LoginAttempts:     100,
			LoginWindow:       time.Minute,
		},
		Export: config.ExportConfig{DefaultFormat: shopping.FormatText},
	}
}

// newTestServer assembles the full HTTP stack over an in-memory database.
// Options adjust the configuration before anything is built.
func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := testConfig(t)
	for _, opt := range opts {
		opt(cfg)
	}
	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close test database: %v", err)
		}
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	revocations, err := auth.OpenRevocationStore("")
	if err != nil {
		t.Fatalf("OpenRevocationStore() error = %v", err)
	}
	t.Cleanup(func() { _ = revocations.Close() })

	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	exporter, err := shopping.NewExporter(shopping.NewAggregator(db), cfg.Export.DefaultFormat, "")
	if err != nil {
		t.Fatalf("NewExporter() error = %v", err)
	}

	emitter := &recordingEmitter{}
	handler := NewHandler(HandlerDeps{
		Store:    db,
		Auth:     auth.NewService(db, jwtManager, revocations, auth.NewLoginThrottle(cfg.Security.LoginAttempts, cfg.Security.LoginWindow)),
		Enforcer: enforcer,
		Media:    media.NewStore(&cfg.API),
		Exporter: exporter,
		Events:   emitter,
		Config:   cfg,
	})
	router := NewRouter(handler, NewChiMiddleware(NewChiMiddlewareConfig(&cfg.Security)))

	return &testServer{t: t, db: db, cfg: cfg, handler: router.SetupChi(), events: emitter}
}

// do sends a request with an optional JSON body and token.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// envelope is APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

// decodeData decodes the envelope payload into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %s, want %s (%s)", env.Error.Code, code, env.Error.Message)
	}
}

// register creates an account through the API and logs it in.
func (s *testServer) register(username string) (models.User, string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/users/", "", UserCreateRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  testPassword,
	})
	expectStatus(s.t, rec, http.StatusCreated)
	var user models.User
	decodeData(s.t, rec, &user)
	return user, s.login(user.Email, testPassword)
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/token/login/", "", TokenLoginRequest{Email: email, Password: password})
	expectStatus(s.t, rec, http.StatusOK)
	var tok TokenResponse
	decodeData(s.t, rec, &tok)
	if tok.AuthToken == "" {
		s.t.Fatal("login returned an empty token")
	}
	return tok.AuthToken
}

// admin bootstraps an admin account and logs it in.
func (s *testServer) admin() string {
	s.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		s.t.Fatal(err)
	}
	if _, err := s.db.EnsureAdmin(context.Background(), &models.NewUser{
		Email:        "chef@example.com",
		Username:     "chef",
		FirstName:    "Head",
		LastName:     "Chef",
		PasswordHash: hash,
	}); err != nil {
		s.t.Fatalf("EnsureAdmin() error = %v", err)
	}
	return s.login("chef@example.com", testPassword)
}

func (s *testServer) mustTag(slug string) models.Tag {
	s.t.Helper()
	tag, err := s.db.CreateTag(context.Background(), &models.Tag{Name: "Tag " + slug, Color: "#00AA00", Slug: slug})
	if err != nil {
		s.t.Fatalf("CreateTag(%s) error = %v", slug, err)
	}
	return *tag
}

func (s *testServer) mustIngredient(name, unit string) models.Ingredient {
	s.t.Helper()
	ing, err := s.db.CreateIngredient(context.Background(), &models.Ingredient{Name: name, MeasurementUnit: unit})
	if err != nil {
		s.t.Fatalf("CreateIngredient(%s, %s) error = %v", name, unit, err)
	}
	return *ing
}

// createRecipe posts a recipe through the API.
func (s *testServer) createRecipe(token, name string, tags []int64, lines ...RecipeIngredientRequest) models.Recipe {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/recipes/", token, RecipeRequest{
		Ingredients: lines,
		Tags:        tags,
		Image:       pngDataURI(s.t),
		Name:        name,
		Text:        "Mix and cook.",
		CookingTime: 20,
	})
	expectStatus(s.t, rec, http.StatusCreated)
	var recipe models.Recipe
	decodeData(s.t, rec, &recipe)
	return recipe
}

// pngDataURI returns a 2x2 PNG as a base64 data URI.
func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
