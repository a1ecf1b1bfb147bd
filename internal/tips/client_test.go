package tips

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestGenerateReturnsGatewayTip(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/ai/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(generateResponse{
			Text: "館山バイパスは夕方に渋滞しがちです。早めの給油がおすすめ。",
			Links: []Link{
				{URI: "https://maps.example.com/tateyama", Title: "館山バイパス"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	tip := client.Generate(context.Background(), Coordinate{Lat: 34.99, Lng: 139.86})

	assert.Equal(t, "館山バイパスは夕方に渋滞しがちです。早めの給油がおすすめ。", tip.Text)
	require.Len(t, tip.Links, 1)
	assert.Equal(t, "館山バイパス", tip.Links[0].Title)

	assert.NotEmpty(t, gotBody.Prompt, "固定プロンプトが送られる")
	assert.InDelta(t, 34.99, gotBody.Latitude, 0.0001)
	assert.InDelta(t, 139.86, gotBody.Longitude, 0.0001)
}

func TestGenerateFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	tip := client.Generate(context.Background(), FallbackCoordinate)

	assert.Equal(t, fallbackTipOnFailure, tip.Text)
	assert.Empty(t, tip.Links)
}

func TestGenerateFallsBackOnUnreachableGateway(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger())
	tip := client.Generate(context.Background(), FallbackCoordinate)

	assert.Equal(t, fallbackTipOnFailure, tip.Text)
	assert.Empty(t, tip.Links)
}

func TestGenerateFallsBackOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(generateResponse{Text: "遅すぎる応答"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond, testLogger())
	tip := client.Generate(context.Background(), FallbackCoordinate)

	assert.Equal(t, fallbackTipOnFailure, tip.Text)
}

func TestGenerateUsesEmptyResponseFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Text: ""})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	tip := client.Generate(context.Background(), FallbackCoordinate)

	assert.Equal(t, fallbackTipOnEmpty, tip.Text)
	assert.Empty(t, tip.Links)
}
