package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRazorpaySignatureCheck(t *testing.T) {
	p := NewRazorpay("key_id", "key_secret")

	mac := hmac.New(sha256.New, []byte("key_secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, p.VerifySignature("order_abc", "pay_xyz", sig))
	assert.False(t, p.VerifySignature("order_abc", "pay_other", sig))
	assert.False(t, p.VerifySignature("order_abc", "pay_xyz", "tampered"))
}
