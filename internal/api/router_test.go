package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"smart-pantry-chef/internal/core/auth"
	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/infrastructure/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testOrigin = "https://pantry.example.com"

type providers struct {
	spoonacular   *httptest.Server
	libre         *httptest.Server
	recipeCalls   atomic.Int32
	translateCall atomic.Int32
	lastQuery     atomic.Value
}

func newProviders(t *testing.T) *providers {
	p := &providers{}

	p.spoonacular = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.recipeCalls.Add(1)
		p.lastQuery.Store(r.URL.Query().Get("ingredients"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/recipes/findByIngredients" {
			w.Write([]byte(`[{"id":1,"title":"Fish Pho"}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"failure","code":404,"message":"A recipe with the id 0 does not exist."}`))
	}))
	t.Cleanup(p.spoonacular.Close)

	p.libre = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.translateCall.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText":"noodle soup"}`))
	}))
	t.Cleanup(p.libre.Close)

	return p
}

func newTestConfig(p *providers) *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "test", Version: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Auth: config.AuthConfig{
			JWTSecret:  "router-test-secret",
			TokenTTL:   24 * time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		Recipe: config.RecipeConfig{
			APIKey:      "key",
			BaseURL:     p.spoonacular.URL,
			Timeout:     2 * time.Second,
			ResultCount: 5,
			Ranking:     1,
		},
		Translation: config.TranslationConfig{
			BaseURL:        p.libre.URL,
			SourceLanguage: "auto",
			TargetLanguage: "en",
			Concurrency:    2,
			Timeout:        2 * time.Second,
		},
		ML:     config.MLConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		CORS:   config.CORSConfig{FrontendURL: testOrigin},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *providers, *config.Config) {
	t.Helper()
	p := newProviders(t)
	cfg := newTestConfig(p)

	s, err := store.NewSQLStore("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	return SetupRouter(cfg, s), p, cfg
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestBannerAndNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w, _ := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Smart Pantry Chef API is running...", w.Body.String())

	w, body := do(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{"success": false, "message": "API endpoint not found"}, body)
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _, cfg := newTestRouter(t)
	register := `{"name":"Dewi","email":"Dewi@Example.com","password":"rahasia"}`

	w, _ := do(r, http.MethodPost, "/api/auth/register", register)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(r, http.MethodPost, "/api/auth/register", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", body["message"])

	w, _ = do(r, http.MethodPost, "/api/auth/login", `{"email":"dewi@example.com","password":"wrong!"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"rahasia"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(r, http.MethodPost, "/api/auth/login", `{"email":"dewi@example.com","password":"rahasia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "dewi@example.com", user["email"])
	assert.NotContains(t, user, "password")

	claims, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.UserID)
}

func TestRecipeSearch(t *testing.T) {
	r, p, _ := newTestRouter(t)

	w, _ := do(r, http.MethodPost, "/api/recipes/by-ingredients", `{"ingredients":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"recipes":[]}`, w.Body.String())
	assert.Equal(t, int32(0), p.recipeCalls.Load())

	w, body := do(r, http.MethodPost, "/api/recipes/by-ingredients", `{"ingredients":["Ikan","bún bò","lime"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["recipes"], 1)
	assert.Equal(t, "fish,noodle soup,lime", p.lastQuery.Load())
	assert.Equal(t, int32(1), p.translateCall.Load())
}

func TestRecipeDetailRelaysProviderStatus(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w, body := do(r, http.MethodGet, "/api/recipes/0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "A recipe with the id 0 does not exist.", body["message"])
}

func TestCORSAllowList(t *testing.T) {
	r, _, _ := newTestRouter(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight(testOrigin)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w, _ := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
