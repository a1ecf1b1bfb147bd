package public

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/tips"
)

type memoryRepository struct {
	catalog catalogdomain.Catalog
}

func (r *memoryRepository) LoadCatalog(_ context.Context) (catalogdomain.Catalog, error) {
	if r.catalog == nil {
		return nil, catalogapp.ErrStateNotFound
	}
	return r.catalog.Clone(), nil
}

func (r *memoryRepository) SaveCatalog(_ context.Context, catalog catalogdomain.Catalog) error {
	r.catalog = catalog.Clone()
	return nil
}

func newTestRouter(t *testing.T, gatewayURL string) *chi.Mux {
	t.Helper()
	logger := log.New(io.Discard, "", 0)

	catalogSvc, err := catalogapp.NewService(context.Background(), &memoryRepository{}, logger)
	require.NoError(t, err)

	tipSvc := tips.NewService(tips.NewClient(gatewayURL, time.Second, logger), nil, logger)

	router := chi.NewRouter()
	NewHandler(Config{Logger: logger, Catalog: catalogSvc, Tips: tipSvc}).Register(router)
	return router
}

func TestStoreListReturnsSeedCatalog(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp storeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "tateyama", resp.Items[0].ID, "表示順が保たれる")
	assert.Equal(t, "miyoshi", resp.Items[1].ID)
}

func TestStoreListKeywordFilter(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores?keyword=%E4%B8%89%E8%8A%B3", nil)) // 三芳

	require.Equal(t, http.StatusOK, rec.Code)

	var resp storeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "三芳店", resp.Items[0].Name)
}

func TestStoreDetailIncludesMemberPrices(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/tateyama", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp storeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Prices, 2)

	regular := resp.Prices[0]
	assert.Equal(t, "regular", regular.Fuel)
	assert.Equal(t, "レギュラー", regular.Label)
	assert.Equal(t, 172, regular.Price)
	assert.Equal(t, 7, regular.Discount)
	assert.Equal(t, 165, regular.MemberPrice)
}

func TestStoreDetailNotFound(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/chikura", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTipEndpointAlwaysSucceeds(t *testing.T) {
	// ゲートウェイに到達できなくても固定文言で 200 を返す
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tips", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Text)
	assert.NotNil(t, resp.Links)
}

func TestTipEndpointUsesGateway(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"text":  "房総フラワーラインは本日も快走です。",
			"links": []map[string]string{{"uri": "https://maps.example.com/flower", "title": "フラワーライン"}},
		})
	}))
	defer gateway.Close()

	router := newTestRouter(t, gateway.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tips?lat=34.99&lng=139.86", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "房総フラワーラインは本日も快走です。", resp.Text)
	require.Len(t, resp.Links, 1)
	assert.Equal(t, "フラワーライン", resp.Links[0].Title)
}
