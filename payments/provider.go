package payments

import "context"

// Provider abstracts the checkout gateway. CreateOrder opens an order
// for a registration; VerifySignature checks the callback the gateway
// posts after the user completes checkout.
type Provider interface {
	Name() string

	CreateOrder(ctx context.Context, receipt string, amountPaise int64, currency string) (orderID string, err error)

	VerifySignature(orderID, paymentID, signature string) bool
}
