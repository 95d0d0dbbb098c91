package entities

// TransactionStatusComplete is the processor-side status of a paid checkout
// session. Only complete transactions count against the capacity.
const TransactionStatusComplete = "complete"

// Transaction is a payment-processor checkout session. The processor owns
// these records entirely; this service only reads them. The metadata map is
// the single channel correlating a transaction back to this deployment's
// product and the buyer's chosen size.
type Transaction struct {
	ID              string            `json:"id"`
	Status          string            `json:"status"`
	PaymentIntentID string            `json:"payment_intent"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
	ShippingDetails *ShippingDetails  `json:"shipping_details"`
}

func (t Transaction) ProductSlug() string {
	return t.Metadata["product"]
}

func (t Transaction) Size() string {
	return t.Metadata["size"]
}

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ShippingDetails struct {
	Name    string   `json:"name"`
	Address *Address `json:"address"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
