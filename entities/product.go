package entities

import "time"

// MaxStock is hard-capped at 200. It must never be overridden by env vars.
const MaxStock = 200

// Product is the immutable descriptor of the single item sold during the
// drop. It is built once at process start; the capacity comes from the
// compile-time constant, never from mutable configuration.
type Product struct {
	Name        string
	Slug        string
	Description string

	// Price in minor units (cents).
	Price    int64
	Currency string

	Capacity int
	Sizes    []string

	ShippingDelay   string
	ShipToCountries []string

	SaleEnd time.Time
}

func NewProduct(saleEnd time.Time) Product {
	return Product{
		Name:            "T-shirt UNTOLD – Limited Edition",
		Slug:            "tshirt-untold-limited",
		Description:     "Limited edition of 200. Premium print on 240g organic cotton. Exclusive design.",
		Price:           5900,
		Currency:        "eur",
		Capacity:        MaxStock,
		Sizes:           []string{"S", "M", "L"},
		ShippingDelay:   "7 to 15 business days",
		ShipToCountries: []string{"FR", "BE", "CH", "LU", "MC"},
		SaleEnd:         saleEnd,
	}
}

func (p Product) SizeAllowed(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
