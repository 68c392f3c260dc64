package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/dpalmer/critic/internal/config"
)

// ReviewRequest contains the data sent to a model for review.
type ReviewRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// ReviewResponse contains the raw response from a model.
type ReviewResponse struct {
	Content    string
	TokensUsed int
}

// Reviewer is the provider abstraction interface.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}

// New creates a provider from the configuration.
func New(cfg config.Config) (Reviewer, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg)
	case "ollama", "lmstudio":
		return NewOllama(cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// RemoteError reports a failed call to the model endpoint: a transport
// failure or a non-success HTTP status.
type RemoteError struct {
	StatusCode int // zero when the request never completed
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model endpoint error (status %d): %s", e.StatusCode, e.Message)
	}
	return "model endpoint error: " + e.Message
}

// IsRemote reports whether err is a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
