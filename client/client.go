// Package client implements the consumer side of the prediction API: request
// submission, schema reconciliation, and tolerant response parsing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pricewise/corolla-pricer/models"
	"github.com/pricewise/corolla-pricer/utils"
)

// ErrServiceUnreachable wraps transport-level failures: the prediction
// service could not be contacted at all.
var ErrServiceUnreachable = errors.New("prediction service unreachable")

// StatusError is returned when the service answered with a non-success
// status. Body carries the raw response for display to the operator.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// UnexpectedResponseError is returned when the service answered 200 but the
// body matched none of the recognized response shapes. Body is pretty-printed
// for manual diagnosis.
type UnexpectedResponseError struct {
	Body string
}

func (e *UnexpectedResponseError) Error() string {
	return "unexpected response shape:\n" + e.Body
}

// Client talks to one prediction service instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. http://127.0.0.1:8000.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: utils.RequestTimeout,
		},
	}
}

// Predict submits one record and returns the predicted price.
func (c *Client) Predict(ctx context.Context, record models.FeatureRecord) (float64, error) {
	raw, err := c.postJSON(ctx, "/predict", record)
	if err != nil {
		return 0, err
	}

	price, ok := ParseSinglePrice(raw)
	if !ok {
		return 0, &UnexpectedResponseError{Body: prettyJSON(raw)}
	}
	return price, nil
}

// PredictBatch submits records in order and returns prices aligned with them.
func (c *Client) PredictBatch(ctx context.Context, records []models.FeatureRecord) ([]float64, error) {
	raw, err := c.postJSON(ctx, "/predict_batch", records)
	if err != nil {
		return nil, err
	}

	prices, ok := ParseBatchPrices(raw)
	if !ok {
		return nil, &UnexpectedResponseError{Body: prettyJSON(raw)}
	}
	return prices, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	return json.RawMessage(respBody), nil
}

// Timeout returns the fixed per-request timeout the client enforces.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

func prettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
