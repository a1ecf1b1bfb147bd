package admin

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adminapp "github.com/yoshino-ss/yoshino-site-services/api/internal/admin/application"
	admindomain "github.com/yoshino-ss/yoshino-site-services/api/internal/admin/domain"
	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
)

type memoryState struct {
	catalog  catalogdomain.Catalog
	unlocked bool
}

func (s *memoryState) LoadCatalog(_ context.Context) (catalogdomain.Catalog, error) {
	if s.catalog == nil {
		return nil, catalogapp.ErrStateNotFound
	}
	return s.catalog.Clone(), nil
}

func (s *memoryState) SaveCatalog(_ context.Context, catalog catalogdomain.Catalog) error {
	s.catalog = catalog.Clone()
	return nil
}

func (s *memoryState) LoadUnlockFlag(_ context.Context) (bool, error) {
	return s.unlocked, nil
}

func (s *memoryState) SaveUnlockFlag(_ context.Context, unlocked bool) error {
	s.unlocked = unlocked
	return nil
}

type fixture struct {
	router *chi.Mux
	state  *memoryState
	clock  *time.Time
}

func newFixture(t *testing.T, unlocked bool) *fixture {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	state := &memoryState{unlocked: unlocked}

	catalogSvc, err := catalogapp.NewService(context.Background(), state, logger)
	require.NoError(t, err)

	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	clock := &now
	sessions := adminapp.NewSessionService(adminapp.Config{
		Logger:      logger,
		Repo:        state,
		AdminSecret: "yoshino777",
		TokenSecret: []byte("edit-token-secret"),
		TokenIssuer: "yoshino-site-api",
		TokenTTL:    time.Hour,
		Unlocked:    unlocked,
		Now:         func() time.Time { return *clock },
	})

	router := chi.NewRouter()
	router.Route("/admin", NewHandler(Config{Logger: logger, Sessions: sessions, Catalog: catalogSvc}).Register)
	return &fixture{router: router, state: state, clock: clock}
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) unlockEditMode(t *testing.T) string {
	t.Helper()
	f.do(t, http.MethodPost, "/admin/toggle", "", "")
	rec := f.do(t, http.MethodPost, "/admin/confirm", `{"password":"yoshino777"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp confirmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.EditToken)
	return resp.EditToken
}

func TestGestureSequenceUnlocksManagement(t *testing.T) {
	f := newFixture(t, false)

	var resp sessionResponse
	for i := 0; i < admindomain.GestureThreshold; i++ {
		rec := f.do(t, http.MethodPost, "/admin/gesture", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}

	assert.Equal(t, string(admindomain.GateVisibleLocked), resp.State)
	assert.True(t, f.state.unlocked, "解放フラグが永続化される")
}

func TestConfirmWithWrongPasswordReturns401(t *testing.T) {
	f := newFixture(t, true)
	f.do(t, http.MethodPost, "/admin/toggle", "", "")

	rec := f.do(t, http.MethodPost, "/admin/confirm", `{"password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error   string          `json:"error"`
		Session sessionResponse `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(admindomain.GateVisibleLocked), resp.Session.State)
	assert.True(t, resp.Session.ErrorActive)
}

func TestConfirmIssuesEditTokenAndEnablesEdits(t *testing.T) {
	f := newFixture(t, true)
	token := f.unlockEditMode(t)

	rec := f.do(t, http.MethodPatch, "/admin/stores/tateyama/prices/regular", `{"price":170}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 170, resp.Items[0].Prices[0].Price)
	assert.Equal(t, 163, resp.Items[0].Prices[0].MemberPrice)

	// 編集結果は永続化され、次回の読み込みでも観測できる
	reloaded, err := f.state.LoadCatalog(context.Background())
	require.NoError(t, err)
	store, ok := reloaded.FindByID("tateyama")
	require.True(t, ok)
	assert.Equal(t, 170, store.Prices[catalogdomain.FuelRegular])
}

func TestEditEndpointsRequireToken(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(t, http.MethodPatch, "/admin/stores/tateyama/prices/regular", `{"price":170}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPatch, "/admin/stores/tateyama/prices/regular", `{"price":170}`, "forged-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDiscountUpdate(t *testing.T) {
	f := newFixture(t, true)
	token := f.unlockEditMode(t)

	rec := f.do(t, http.MethodPatch, "/admin/stores/miyoshi/discounts/diesel", `{"discount":5}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Items[1].Prices[1].Discount)
	assert.Equal(t, 149, resp.Items[1].Prices[1].MemberPrice)
}

func TestEditValidation(t *testing.T) {
	f := newFixture(t, true)
	token := f.unlockEditMode(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"負の価格", "/admin/stores/tateyama/prices/regular", `{"price":-1}`, http.StatusBadRequest},
		{"価格を超える値引", "/admin/stores/tateyama/discounts/regular", `{"discount":300}`, http.StatusBadRequest},
		{"未知の油種", "/admin/stores/tateyama/prices/kerosene", `{"price":120}`, http.StatusBadRequest},
		{"本文なし", "/admin/stores/tateyama/prices/regular", ``, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPatch, tt.path, tt.body, token)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUnknownStoreEditIsSilentNoOp(t *testing.T) {
	f := newFixture(t, true)
	token := f.unlockEditMode(t)

	rec := f.do(t, http.MethodPatch, "/admin/stores/chikura/prices/regular", `{"price":170}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 172, resp.Items[0].Prices[0].Price, "既存店舗は変化しない")
}

func TestToggleOffDoesNotRequirePassword(t *testing.T) {
	f := newFixture(t, true)
	f.unlockEditMode(t)

	f.do(t, http.MethodPost, "/admin/toggle", "", "")
	rec := f.do(t, http.MethodPost, "/admin/confirm", `{"password":""}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp confirmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(admindomain.GateVisibleLocked), resp.Session.State)
	assert.Empty(t, resp.EditToken)
}

func TestCancelClosesPrompt(t *testing.T) {
	f := newFixture(t, true)
	f.do(t, http.MethodPost, "/admin/toggle", "", "")

	rec := f.do(t, http.MethodPost, "/admin/cancel", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.PromptOpen)
	assert.Equal(t, string(admindomain.GateVisibleLocked), resp.State)
}
