package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"drop/entities"
)

// One ledger page per request; the processor caps list calls at 100 items.
const ledgerPageSize = 100

// PaymentsClient talks to the payment processor. It owns the three remote
// capabilities the engine needs: enumerating completed transactions,
// opening checkout intents and issuing refunds. It never retries; retry
// policy belongs to callers.
type PaymentsClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPaymentsClient(baseURL, apiKey string, client *http.Client) *PaymentsClient {
	if client == nil {
		client = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &PaymentsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type transactionsPage struct {
	Data    []entities.Transaction `json:"data"`
	HasMore bool                   `json:"has_more"`
}

// CountCompleted walks the processor's ledger of completed transactions with
// a cursor and counts the ones whose metadata matches the product slug
// exactly. An empty ledger counts as zero.
func (c *PaymentsClient) CountCompleted(ctx context.Context, productSlug string) (int, error) {
	total := 0
	cursor := ""

	for {
		page, err := c.listCompleted(ctx, cursor)
		if err != nil {
			return 0, err
		}

		for _, tx := range page.Data {
			if tx.Metadata["product"] == productSlug {
				total++
			}
		}

		if !page.HasMore || len(page.Data) == 0 {
			return total, nil
		}
		cursor = page.Data[len(page.Data)-1].ID
	}
}

func (c *PaymentsClient) listCompleted(ctx context.Context, cursor string) (transactionsPage, error) {
	q := url.Values{}
	q.Set("status", entities.TransactionStatusComplete)
	q.Set("limit", strconv.Itoa(ledgerPageSize))
	if cursor != "" {
		q.Set("starting_after", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/checkout/sessions?"+q.Encode(), nil)
	if err != nil {
		return transactionsPage{}, fmt.Errorf("building list transactions request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return transactionsPage{}, entities.UpstreamError{Op: "list transactions", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transactionsPage{}, entities.UpstreamError{
			Op:  "list transactions",
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	var page transactionsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return transactionsPage{}, entities.UpstreamError{Op: "list transactions", Err: err}
	}
	return page, nil
}

type checkoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateIntent opens a checkout session at the processor and returns the
// redirect URL for the buyer. The product slug and chosen size ride along as
// immutable session metadata; the webhook processor has no other way to
// correlate the eventual completion back to this product.
func (c *PaymentsClient) CreateIntent(ctx context.Context, product entities.Product, size, successURL, cancelURL string) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", product.Currency)
	form.Set("line_items[0][price_data][product_data][name]", fmt.Sprintf("%s – Size %s", product.Name, size))
	form.Set("line_items[0][price_data][product_data][description]", product.Description)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(product.Price, 10))
	form.Set("line_items[0][quantity]", "1")
	for i, country := range product.ShipToCountries {
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i), country)
	}
	form.Set("metadata[product]", product.Slug)
	form.Set("metadata[size]", size)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building create intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", entities.UpstreamError{Op: "create intent", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", entities.UpstreamError{
			Op:  "create intent",
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	var session checkoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", entities.UpstreamError{Op: "create intent", Err: err}
	}
	return session.URL, nil
}

// Refund compensates one transaction by refunding its payment intent.
func (c *PaymentsClient) Refund(ctx context.Context, paymentIntentID, reason string) error {
	form := url.Values{}
	form.Set("payment_intent", paymentIntentID)
	form.Set("reason", reason)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/refunds", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building refund request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return entities.UpstreamError{Op: "refund", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.UpstreamError{
			Op:  "refund",
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}
	return nil
}
