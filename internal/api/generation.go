// Package api holds the client for the external text-generation
// service (an OpenAI-compatible chat completions endpoint).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"

	"poker-tracker/internal/config"
	"poker-tracker/internal/constants"
)

type GenerationClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *fasthttp.Client
}

func NewGenerationClient(cfg *config.Config) *GenerationClient {
	return &GenerationClient{
		apiKey:  cfg.GenAPIKey,
		baseURL: cfg.GenBaseURL,
		model:   cfg.GenModel,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.GenerationTimeout,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the first
// choice's text. Rate limits and 5xx responses are retried with
// exponential backoff before giving up.
func (c *GenerationClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("generation API key is not configured")
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   600,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	var text string
	backoff := retry.WithMaxRetries(constants.GenerationMaxRetries, retry.NewExponential(constants.GenerationRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, status, err := c.post(ctx, "/v1/chat/completions", payload)
		if err != nil {
			return retry.RetryableError(err)
		}
		if status == fasthttp.StatusTooManyRequests || status >= 500 {
			return retry.RetryableError(fmt.Errorf("generation API error: %d", status))
		}
		if status != fasthttp.StatusOK {
			return fmt.Errorf("generation API error: %d", status)
		}

		var result chatCompletionResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to decode completion response: %w", err)
		}
		if len(result.Choices) == 0 {
			return fmt.Errorf("completion response carried no choices")
		}
		text = result.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}

	return text, nil
}

func (c *GenerationClient) post(ctx context.Context, path string, payload []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, 0, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, 0, err
		}
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, resp.StatusCode(), nil
}
