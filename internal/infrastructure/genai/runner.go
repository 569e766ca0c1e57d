package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/event-ops-api/internal/config"
	"github.com/event-ops-api/internal/domain"
)

// Runner executes a named flow on the hosted prompt runner: structured
// input in, structured output out. The inference itself happens remotely;
// this client only speaks the wire contract.
type Runner interface {
	Run(ctx context.Context, flow string, in, out interface{}) error
}

type client struct {
	http    *http.Client
	baseURL string
}

// NewClient builds a Runner against cfg.InsightRunnerURL. Returns an
// error when no URL is configured so main can degrade gracefully.
func NewClient(cfg *config.Config) (Runner, error) {
	if cfg.InsightRunnerURL == "" {
		return nil, fmt.Errorf("insight runner URL not configured: %w", domain.ErrProviderUnavailable)
	}
	return &client{
		http:    &http.Client{Timeout: cfg.InsightRunnerTimeout},
		baseURL: cfg.InsightRunnerURL,
	}, nil
}

func (c *client) Run(ctx context.Context, flow string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return fmt.Errorf("encode flow input: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/flows/"+flow, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("flow %s: %v: %w", flow, err, domain.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("flow %s returned %d after %s: %w", flow, resp.StatusCode, time.Since(start).Round(time.Millisecond), domain.ErrProviderUnavailable)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode flow %s output: %w", flow, err)
	}
	return nil
}
