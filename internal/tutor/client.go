package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codetrek/internal/logger"

	"go.uber.org/zap"
)

const (
	noResponseText = "No valid response from model."
	DefaultTimeout = 180 * time.Second
)

// Client wraps a Provider and turns every failure into reply text.
type Client struct {
	provider Provider
	timeout  time.Duration
}

func NewClient(provider Provider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{provider: provider, timeout: timeout}
}

// Generate sends prompt with the default sampling parameters. It never fails:
// backend errors come back as an "Error..." string.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.provider.Generate(ctx, NewRequest(prompt))
	if err != nil {
		logger.Log.Warn("Tutor generation failed",
			zap.String("provider", c.provider.Name()),
			zap.String("model", c.provider.ModelID()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return errorText(c.provider.Name(), err)
	}

	if strings.TrimSpace(text) == "" {
		return noResponseText
	}
	return text
}

func errorText(backend string, err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: API returned status code %d", statusErr.Code)
	case errors.Is(err, ErrEmptyResponse):
		return noResponseText
	default:
		return fmt.Sprintf("Error connecting to %s API: %v", backend, err)
	}
}
