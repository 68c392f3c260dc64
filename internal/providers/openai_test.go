package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dpalmer/critic/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.APIKey = "test-key"
	cfg.Model = "o3-mini"
	cfg.BaseURL = baseURL
	return cfg
}

func TestNewOpenAI_MissingKey(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = ""
	_, err := NewOpenAI(cfg)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestOpenAI_Review(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "o3-mini", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "looks good"}}},
			Usage:   chatUsage{TotalTokens: 42},
		})
	}))
	defer server.Close()

	o, err := NewOpenAI(testConfig(server.URL))
	require.NoError(t, err)

	resp, err := o.Review(context.Background(), ReviewRequest{
		SystemPrompt: "review",
		UserPrompt:   "the diff",
	})
	require.NoError(t, err)
	assert.Equal(t, "looks good", resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.Equal(t, int64(1), calls.Load(), "client must be invoked exactly once")
}

func TestOpenAI_ServerError_NoRetry(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	o, err := NewOpenAI(testConfig(server.URL))
	require.NoError(t, err)

	_, err = o.Review(context.Background(), ReviewRequest{UserPrompt: "diff"})
	require.Error(t, err)
	assert.True(t, IsRemote(err), "non-2xx must surface as RemoteError")

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
	assert.Equal(t, int64(1), calls.Load(), "a failed attempt must not be retried")
}

func TestOpenAI_AuthRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer server.Close()

	o, err := NewOpenAI(testConfig(server.URL))
	require.NoError(t, err)

	_, err = o.Review(context.Background(), ReviewRequest{UserPrompt: "diff"})
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
}

func TestOpenAI_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	o, err := NewOpenAI(testConfig(server.URL))
	require.NoError(t, err)

	_, err = o.Review(context.Background(), ReviewRequest{UserPrompt: "diff"})
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Zero(t, re.StatusCode, "transport failures carry no HTTP status")
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	o, err := NewOpenAI(testConfig(server.URL))
	require.NoError(t, err)

	_, err = o.Review(context.Background(), ReviewRequest{UserPrompt: "diff"})
	assert.True(t, IsRemote(err))
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = "carrier-pigeon"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "k"

	r, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", r.Name())

	cfg.Provider = "ollama"
	r, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ollama", r.Name())
}
