package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/infrastructure/storage"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/usecase"
	"github.com/yourusername/deep-coffee/internal/validation"
)

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupRouter(t *testing.T, password string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo, err := storage.NewMemoryMenuRepository([]entity.MenuItem{
		{ID: "1", Name: "Espresso", Price: "30₺", Description: "Yoğun kahve deneyimi", Image: "https://example.com/e.jpg", Category: "Sıcak İçecekler"},
		{ID: "2", Name: "Cappuccino", Price: "45₺", Description: "Espresso ve süt köpüğü", Image: "https://example.com/c.jpg", Category: "Sıcak İçecekler"},
		{ID: "3", Name: "Cold Brew", Price: "55₺", Description: "18 saat demlenmiş", Image: "https://example.com/cb.jpg", Category: "Soğuk İçecekler"},
	}, nil)
	require.NoError(t, err)

	recorder := metrics.NewRecorder()
	rules := validation.NewRules()
	menu := usecase.NewMenuUseCase(repo, rules, recorder, logger)
	contact := usecase.NewContactUseCase(rules, time.Millisecond, recorder, logger)

	return NewRouter(RouterDeps{
		Menu:           NewMenuHandler(menu, 120, recorder, logger),
		Contact:        NewContactHandler(contact, nil, logger),
		Metrics:        recorder,
		EditorPassword: password,
		Logger:         logger,
	})
}

func do(router *gin.Engine, method, target string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListMenu(t *testing.T) {
	router := setupRouter(t, "")

	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{name: "all", category: "", wantIDs: []string{"1", "2", "3"}},
		{name: "hot", category: "Sıcak İçecekler", wantIDs: []string{"1", "2"}},
		{name: "cold", category: "Soğuk İçecekler", wantIDs: []string{"3"}},
		{name: "stale", category: "Kahvaltı", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(router, http.MethodGet, "/api/menu?category="+url.QueryEscape(tt.category), nil, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var page MenuPage
			require.NoError(t, json.Unmarshal(env.Data, &page))

			ids := []string{}
			for _, it := range page.Items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, []string{"Sıcak İçecekler", "Soğuk İçecekler"}, page.Categories)
			assert.Empty(t, page.Transforms)
		})
	}
}

func TestListMenu_WithOffset(t *testing.T) {
	router := setupRouter(t, "")

	w, env := do(router, http.MethodGet, "/api/menu?offset=120", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page MenuPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Transforms, 3)

	assert.InDelta(t, 0.5, page.Transforms[0].Scale, 1e-9)
	assert.InDelta(t, 0.0, page.Transforms[0].Opacity, 1e-9)
	assert.InDelta(t, 1.0, page.Transforms[1].Scale, 1e-9)
	assert.InDelta(t, 1.0, page.Transforms[2].Opacity, 1e-9)

	for _, raw := range []string{"abc", "NaN", "Inf", "-Inf", "1e400"} {
		w, env = do(router, http.MethodGet, "/api/menu?offset="+raw, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "offset=%s", raw)
		assert.Equal(t, "Invalid offset", env.Message, "offset=%s", raw)
	}
}

func TestGetItem(t *testing.T) {
	router := setupRouter(t, "")

	w, env := do(router, http.MethodGet, "/api/menu/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item entity.MenuItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Cappuccino", item.Name)

	w, env = do(router, http.MethodGet, "/api/menu/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", env.Status)
}

func TestCreateItem(t *testing.T) {
	router := setupRouter(t, "")

	candidate := entity.CandidateItem{
		Name:        "San Sebastian",
		Price:       "90₺",
		Description: "Yanık cheesecake, ev yapımı",
		Image:       "https://example.com/s.jpg",
		Category:    "Tatlılar",
	}

	w, env := do(router, http.MethodPost, "/api/menu", candidate, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var item entity.MenuItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.NotEmpty(t, item.ID)

	w, env = do(router, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, []string{"Sıcak İçecekler", "Soğuk İçecekler", "Tatlılar"}, cats.Categories)
}

func TestCreateItem_Invalid(t *testing.T) {
	router := setupRouter(t, "")

	w, env := do(router, http.MethodPost, "/api/menu", entity.CandidateItem{
		Name: "M", Price: "50TL", Description: "short", Image: "not-a-url",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, env.Errors, 5)

	w, _ = do(router, http.MethodGet, "/api/menu", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/menu", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateItem_EditorGate(t *testing.T) {
	router := setupRouter(t, "barista")

	candidate := entity.CandidateItem{
		Name: "Mocha", Price: "50₺", Description: "Çikolatalı özel karışım kahve",
		Image: "https://example.com/m.jpg", Category: "Sıcak İçecekler",
	}

	w, _ := do(router, http.MethodPost, "/api/menu", candidate, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(router, http.MethodPost, "/api/menu", candidate, map[string]string{EditorHeader: "barista"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(router, http.MethodGet, "/api/menu", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSendContact(t *testing.T) {
	router := setupRouter(t, "")

	w, _ := do(router, http.MethodPost, "/api/contact", entity.ContactMessage{
		Name: "Ayşe", Email: "ayse@example.com", Message: "Hafta sonu açık mısınız?",
	}, nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w, env := do(router, http.MethodPost, "/api/contact", entity.ContactMessage{Name: "A"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, env.Errors, "email")
}

func TestHealthAndMetrics(t *testing.T) {
	router := setupRouter(t, "")

	w, _ := do(router, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	do(router, http.MethodGet, "/api/menu", nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_menu_views_total")
}
