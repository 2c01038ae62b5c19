package payments

import (
	"fmt"
	"os"

	"kalakriti/payments/stub"
)

// NewProvider picks the gateway from PAYMENT_PROVIDER. The stub provider
// is the default so development and tests run without gateway keys.
func NewProvider() (Provider, error) {
	name := os.Getenv("PAYMENT_PROVIDER")
	if name == "" {
		name = "stub"
	}
	switch name {
	case "razorpay":
		keyID := os.Getenv("RAZORPAY_KEY_ID")
		keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
		if keyID == "" || keySecret == "" {
			return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
		}
		return NewRazorpay(keyID, keySecret), nil
	case "stub":
		return stub.New(os.Getenv("PAYMENT_STUB_SECRET")), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", name)
	}
}
