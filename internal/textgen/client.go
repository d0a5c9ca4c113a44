// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package textgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/metrics"
	"github.com/fairlens/fairlens/internal/recommend/explain"
)

const breakerName = "textgen"

// Client calls an OpenAI-compatible chat completions API to produce
// explanation text. It implements explain.Generator.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[string]
}

// Verify Client satisfies the generator contract expected by the composer.
var _ explain.Generator = (*Client)(nil)

// NewClient creates a text generation client from configuration. The caller
// is expected to have validated cfg; a disabled config should not reach here.
func NewClient(cfg config.TextGenConfig) *Client {
	settings := gobreaker.Settings{
		Name:    breakerName,
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			log := logging.WithComponent("textgen")
			log.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		breaker:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Generate produces one explanation for the prompt. It fails fast when the
// local rate limiter has no tokens or the circuit breaker is open; the
// composer falls back to a template in both cases.
func (c *Client) Generate(ctx context.Context, prompt explain.Prompt) (string, error) {
	if !c.limiter.Allow() {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rate_limited").Inc()
		return "", explain.ErrRateLimited
	}

	text, err := c.breaker.Execute(func() (string, error) {
		return c.complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return "", fmt.Errorf("%w: %s", explain.ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return text, nil
}

// chatRequest is the OpenAI chat completions request payload.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs one chat completions round trip.
func (c *Client) complete(ctx context.Context, prompt explain.Prompt) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage(prompt)},
			{Role: "user", Content: userMessage(prompt)},
		},
		MaxTokens: c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if readErr != nil {
			return "", fmt.Errorf("completion returned status %d (failed to read body)", resp.StatusCode)
		}
		return "", fmt.Errorf("completion returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	logging.Ctx(ctx).Debug().
		Dur("duration", time.Since(start)).
		Int("chars", len(text)).
		Msg("explanation generated")

	return text, nil
}

// breakerStateValue maps gobreaker states to gauge values:
// 0 closed, 1 half-open, 2 open.
func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
