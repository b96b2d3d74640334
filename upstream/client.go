// Package upstream implements the streaming client for an OpenAI-compatible
// chat-completion endpoint. Completions stream back as server-sent events
// which are surfaced one token delta at a time.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/june-assistant/relay/core/protocol"
)

const probeTimeout = 5 * time.Second

// ChatRequest is the wire payload for a streaming completion call.
type ChatRequest struct {
	Model    string             `json:"model"`
	Messages []protocol.Message `json:"messages"`
	Stream   bool               `json:"stream"`
}

// Client issues streaming chat-completion calls against a single base URL.
// The streaming client carries no timeout: a turn may run arbitrarily long,
// and cancellation happens through the caller's context.
type Client struct {
	baseURL string
	stream  *http.Client
	probe   *http.Client
}

// New creates a Client from configuration.
func New(cfg *Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		stream:  &http.Client{},
		probe:   &http.Client{Timeout: probeTimeout},
	}
}

// Stream opens one streaming completion call. A non-success initial status
// is returned as *StatusError without opening the streaming phase; transport
// failures establishing the call are returned as-is.
func (c *Client) Stream(ctx context.Context, model string, messages []protocol.Message) (*Stream, error) {
	payload, err := json.Marshal(ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return newStream(resp.Body), nil
}

// ModelInfo describes one model reported by the upstream listing.
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// Models lists the models the upstream endpoint serves. Used as the
// liveness probe for the completion service.
func (c *Client) Models(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return nil, fmt.Errorf("build models request: %w", err)
	}

	resp, err := c.probe.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	var listing struct {
		Data []ModelInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parse models listing: %w", err)
	}
	return listing.Data, nil
}
