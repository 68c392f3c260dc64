package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dpalmer/critic/internal/config"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama implements the Reviewer interface for Ollama and LM Studio
// (OpenAI-compatible API). No credential is required.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates a new Ollama provider.
func NewOllama(cfg config.Config) (*Ollama, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	// Normalize: accept bare hosts as well as full /v1/chat/completions URLs.
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	return &Ollama{
		model:   cfg.Model,
		baseURL: baseURL + "/v1/chat/completions",
		client:  &http.Client{Timeout: 300 * time.Second},
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

// Review performs exactly one request against the local endpoint.
func (o *Ollama) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	payload, err := json.Marshal(chatRequest{
		Model:     o.model,
		Messages:  chatMessages(req),
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return ReviewResponse{}, &RemoteError{Message: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ReviewResponse{}, &RemoteError{Message: "reading response: " + err.Error()}
	}
	if httpResp.StatusCode != http.StatusOK {
		return ReviewResponse{}, &RemoteError{StatusCode: httpResp.StatusCode, Message: string(respBody)}
	}

	return parseChatResponse(respBody)
}
