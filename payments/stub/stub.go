// Package stub is a gateway stand-in for development and tests. Orders
// are issued locally and callbacks are signed with a shared secret using
// the same HMAC scheme as the real gateway.
package stub

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

type Stub struct {
	secret string
}

func New(secret string) *Stub {
	if secret == "" {
		secret = "kalakriti-stub"
	}
	return &Stub{secret: secret}
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) CreateOrder(_ context.Context, receipt string, amountPaise int64, currency string) (string, error) {
	return "order_stub_" + strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

func (s *Stub) VerifySignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(Sign(s.secret, orderID, paymentID)), []byte(signature))
}

// Sign produces a valid callback signature for the given order and
// payment ids. Tests and the dev checkout page use it to simulate the
// gateway callback.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
