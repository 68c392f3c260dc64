package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dpalmer/critic/internal/config"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI implements the Reviewer interface for OpenAI's chat completions API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a new OpenAI provider. The credential must already be
// present in the config; nothing reads the environment here.
func NewOpenAI(cfg config.Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Review performs exactly one request against the endpoint. There is no
// retry: a failed attempt ends the run and the hook reports it.
func (o *OpenAI) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
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
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

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

func chatMessages(req ReviewRequest) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: req.SystemPrompt},
		{Role: "user", Content: req.UserPrompt},
	}
}

func parseChatResponse(body []byte) (ReviewResponse, error) {
	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return ReviewResponse{}, &RemoteError{Message: "parsing response: " + err.Error()}
	}
	if len(result.Choices) == 0 {
		return ReviewResponse{}, &RemoteError{Message: "no choices in response"}
	}
	if result.Choices[0].Message.Content == "" {
		return ReviewResponse{}, &RemoteError{Message: "empty text content in response"}
	}
	return ReviewResponse{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatUsage struct {
	TotalTokens int `json:"total_tokens"`
}
