package node

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ProbeConfig configures the admin HTTP probe client.
type ProbeConfig struct {
	// BaseURL locates the node's admin HTTP interface. Required.
	BaseURL string

	// Timeout bounds each request. A timeout is reported like any
	// other failed response, not as a distinct error class.
	// Default: 5 seconds
	Timeout time.Duration

	// Token, when set, is sent as a bearer token on every request.
	Token string
}

// Probe issues the node admin HTTP requests the remote checks share.
type Probe struct {
	config ProbeConfig
	client *http.Client
}

// NewProbe creates a probe client.
func NewProbe(config ProbeConfig) *Probe {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	return &Probe{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Ping fetches /ping and returns the trimmed response body.
func (p *Probe) Ping(ctx context.Context) (string, error) {
	body, err := p.get(ctx, "/ping")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// Stats fetches and decodes the /stats payload.
func (p *Probe) Stats(ctx context.Context) (map[string]any, error) {
	body, err := p.get(ctx, "/stats")
	if err != nil {
		return nil, err
	}

	var stats map[string]any
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("node: decoding stats: %w", err)
	}
	return stats, nil
}

func (p *Probe) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	if p.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.Token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}
