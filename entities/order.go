package entities

// DraftOrder is the request shape the print vendor expects for one sale.
// Orders are created as drafts and validated manually in the vendor
// dashboard before production.
type DraftOrder struct {
	OrderType           string            `json:"orderType"`
	OrderReferenceID    string            `json:"orderReferenceId"`
	CustomerReferenceID string            `json:"customerReferenceId"`
	Currency            string            `json:"currency"`
	Items               []OrderItem       `json:"items"`
	ShippingAddress     Recipient         `json:"shippingAddress"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

type OrderItem struct {
	ItemReferenceID string      `json:"itemReferenceId"`
	ProductUID      string      `json:"productUid"`
	Quantity        int         `json:"quantity"`
	Files           []OrderFile `json:"files"`
}

type OrderFile struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Recipient struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostCode     string `json:"postCode"`
	Country      string `json:"country"`
	Email        string `json:"email"`
}
