package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"

	// Generation parameters are fixed for report consistency: bounded output,
	// low temperature.
	maxTokens   = 2048
	temperature = 0.3

	// requestTimeout is a hard client-side bound independent of server
	// behavior.
	requestTimeout = 60 * time.Second
)

// Client defines the narrative-generation contract used by the report
// orchestrator.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(requestTimeout)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends one prompt and returns the narrative text. A non-2xx status
// or a response missing the narrative payload is an error; the caller owns
// retries.
func (c *anthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := messageRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.Status())
	}
	if len(respBody.Content) == 0 || strings.TrimSpace(respBody.Content[0].Text) == "" {
		return "", fmt.Errorf("empty narrative in anthropic response")
	}

	return respBody.Content[0].Text, nil
}
