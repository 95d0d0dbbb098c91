package entities

import "fmt"

// ValidationError is malformed or disallowed input. User-correctable,
// surfaced verbatim with a 400.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// DropClosedError means the sale window is over or the stock is exhausted.
// Maps to a 410.
type DropClosedError struct{}

func (e DropClosedError) Error() string {
	return "the drop is over"
}

// SignatureError means the webhook sender could not be trusted. No
// processing happens after it.
type SignatureError struct {
	Reason string
}

func (e SignatureError) Error() string {
	return e.Reason
}

// UpstreamError wraps a failure talking to the payment processor or the
// fulfillment vendor.
type UpstreamError struct {
	Op  string
	Err error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}
