// Package parseapi is the client for the third-party document-parsing
// API. When the service is configured and reachable its output is used
// directly and the local fallback pipeline is bypassed.
package parseapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/docinsight/internal/core/domain"
	"github.com/kirillkom/docinsight/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

// Enabled reports whether a remote parsing endpoint is configured at all.
// Without one, every document takes the local fallback path.
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Parse uploads the raw file for parsing and adapts the response into the
// domain model. The call runs through the resilience executor: transient
// failures are retried and repeated failures open the circuit.
func (c *Client) Parse(ctx context.Context, documentID, filename string, raw []byte) (*domain.AnalysisResult, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("parse api not configured")
	}

	var payload []byte
	call := func(callCtx context.Context) error {
		body, err := c.postFile(callCtx, "/v1/parse", filename, raw)
		if err != nil {
			return err
		}
		payload = body
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "parseapi.parse", call, classifyParseAPIError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded("parse document", err)
	}

	result, err := AdaptResponse(documentID, payload)
	if err != nil {
		return nil, fmt.Errorf("adapt parse response: %w", err)
	}
	return result, nil
}
