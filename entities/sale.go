package entities

// SaleOutcome is the result of reconciling one completed transaction against
// the capacity.
type SaleOutcome string

const (
	// SaleAccepted means the transaction fits within capacity and a
	// fulfillment order is dispatched for it.
	SaleAccepted SaleOutcome = "accepted"
	// SaleOversold means the transaction raced past the capacity check and
	// is compensated with a refund. No fulfillment order is created.
	SaleOversold SaleOutcome = "oversold"
)

// Sale is computed once per completed transaction at webhook processing time.
// It is never stored.
type Sale struct {
	TransactionID string
	Size          string
	Outcome       SaleOutcome
}
