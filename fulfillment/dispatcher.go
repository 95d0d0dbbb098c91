package fulfillment

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"drop/entities"
)

// Base product uid at the print vendor; {size} is replaced per order.
const productUIDTemplate = "apparel_product_gca_t-shirt_gsc_crewneck_gcu_unisex_gqa_classic_gsi_{size}_gco_black_gpr_4-4_inlbl_next-level_3600"

// fallbackVariant is used for any size missing from the table.
const fallbackVariant = "m"

var sizeVariants = map[string]string{
	"S": "s",
	"M": "m",
	"L": "l",
}

// VendorClient is the capability the print vendor exposes. One conforming
// implementation per vendor, selected at configuration time.
type VendorClient interface {
	CreateDraftOrder(ctx context.Context, order entities.DraftOrder) (string, error)
}

// Dispatcher translates an accepted sale into a draft order at the print
// vendor. Best-effort: nothing here is surfaced to the payer and a failure
// never rolls back the sale, since the capture already happened upstream.
type Dispatcher struct {
	vendor  VendorClient
	product entities.Product
	siteURL string
}

// NewDispatcher accepts a nil vendor; dispatching then degrades to a warning,
// matching deployments where the vendor API key is not configured yet.
func NewDispatcher(vendor VendorClient, product entities.Product, siteURL string) *Dispatcher {
	return &Dispatcher{
		vendor:  vendor,
		product: product,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, tx entities.Transaction) error {
	if d.vendor == nil {
		logrus.WithField("transaction_id", tx.ID).Warn("Fulfillment vendor not configured, skipping order")
		return nil
	}

	size := tx.Size()
	if size == "" {
		size = "M"
	}

	order := entities.DraftOrder{
		OrderType:           "draft",
		OrderReferenceID:    tx.ID,
		CustomerReferenceID: customerReference(tx),
		Currency:            strings.ToUpper(d.product.Currency),
		Items: []entities.OrderItem{
			{
				ItemReferenceID: tx.ID + "-tshirt",
				ProductUID:      productUID(size),
				Quantity:        1,
				Files: []entities.OrderFile{
					{Type: "default", URL: d.siteURL + "/tshirt-front.png"},
					{Type: "back", URL: d.siteURL + "/tshirt-back.png"},
					{Type: "neck-inner", URL: d.siteURL + "/label-neck.png"},
				},
			},
		},
		ShippingAddress: recipient(tx),
		Metadata:        map[string]string{"size": size},
	}

	orderID, err := d.vendor.CreateDraftOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("creating draft order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"order_id":       orderID,
	}).Info("Draft order created")
	return nil
}

func productUID(size string) string {
	variant, ok := sizeVariants[size]
	if !ok {
		variant = fallbackVariant
	}
	return strings.Replace(productUIDTemplate, "{size}", variant, 1)
}

func customerReference(tx entities.Transaction) string {
	if tx.CustomerDetails != nil && tx.CustomerDetails.Email != "" {
		return tx.CustomerDetails.Email
	}
	return tx.ID
}

// recipient builds the shipping payload, falling back from shipping details
// to customer details to empty strings.
func recipient(tx entities.Transaction) entities.Recipient {
	name := ""
	if tx.ShippingDetails != nil {
		name = tx.ShippingDetails.Name
	}
	if name == "" && tx.CustomerDetails != nil {
		name = tx.CustomerDetails.Name
	}
	firstName, lastName := splitName(name)

	var address entities.Address
	if tx.ShippingDetails != nil && tx.ShippingDetails.Address != nil {
		address = *tx.ShippingDetails.Address
	}

	country := address.Country
	if country == "" {
		country = "FR"
	}

	email := ""
	if tx.CustomerDetails != nil {
		email = tx.CustomerDetails.Email
	}

	return entities.Recipient{
		FirstName:    firstName,
		LastName:     lastName,
		AddressLine1: address.Line1,
		AddressLine2: address.Line2,
		City:         address.City,
		State:        address.State,
		PostCode:     address.PostalCode,
		Country:      country,
		Email:        email,
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
