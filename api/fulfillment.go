package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"drop/entities"
)

// FulfillmentClient creates draft orders at the print-on-demand vendor.
type FulfillmentClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewFulfillmentClient(url, apiKey string, client *http.Client) *FulfillmentClient {
	if client == nil {
		client = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &FulfillmentClient{
		url:    url,
		apiKey: apiKey,
		client: client,
	}
}

// CreateDraftOrder sends one order request and returns the vendor's order id.
func (c *FulfillmentClient) CreateDraftOrder(ctx context.Context, order entities.DraftOrder) (string, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("encoding draft order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building draft order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", entities.UpstreamError{Op: "create draft order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", entities.UpstreamError{
			Op:  "create draft order",
			Err: fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body),
		}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", entities.UpstreamError{Op: "create draft order", Err: err}
	}
	return created.ID, nil
}
