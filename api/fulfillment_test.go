package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drop/entities"
)

func testDraftOrder() entities.DraftOrder {
	return entities.DraftOrder{
		OrderType:           "draft",
		OrderReferenceID:    "cs_1",
		CustomerReferenceID: "ada@example.com",
		Currency:            "EUR",
		Items: []entities.OrderItem{
			{
				ItemReferenceID: "cs_1-tshirt",
				ProductUID:      "apparel_product_gsi_m",
				Quantity:        1,
				Files: []entities.OrderFile{
					{Type: "default", URL: "https://shop.example.com/tshirt-front.png"},
				},
			},
		},
		ShippingAddress: entities.Recipient{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Country:   "FR",
			Email:     "ada@example.com",
		},
	}
}

func TestCreateDraftOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "gelato-key", r.Header.Get("X-API-KEY"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var order entities.DraftOrder
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "draft", order.OrderType)
		assert.Equal(t, "cs_1", order.OrderReferenceID)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 1, order.Items[0].Quantity)

		fmt.Fprint(w, `{"id":"order-42"}`)
	}))
	defer server.Close()

	client := NewFulfillmentClient(server.URL, "gelato-key", server.Client())

	orderID, err := client.CreateDraftOrder(context.Background(), testDraftOrder())
	require.NoError(t, err)
	assert.Equal(t, "order-42", orderID)
}

func TestCreateDraftOrderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid productUid", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewFulfillmentClient(server.URL, "gelato-key", server.Client())

	_, err := client.CreateDraftOrder(context.Background(), testDraftOrder())

	var upstreamErr entities.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Contains(t, upstreamErr.Error(), "invalid productUid")
}
