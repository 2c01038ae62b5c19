package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type Razorpay struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

func (p *Razorpay) Name() string { return "razorpay" }

func (p *Razorpay) CreateOrder(_ context.Context, receipt string, amountPaise int64, currency string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	order, err := p.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order create: no order id in response")
	}
	return orderID, nil
}

// VerifySignature checks the documented callback signature:
// HMAC-SHA256(order_id + "|" + payment_id, key_secret).
func (p *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
