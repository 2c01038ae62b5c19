package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.co", "asha.verma@example.org", "x+y@sub.domain.in"}
	for _, e := range valid {
		assert.True(t, IsEmail(e), e)
	}

	invalid := []string{"", "plain", "a@b", "a b@c.d", "@x.y", "a@.", "a@b .c"}
	for _, e := range invalid {
		assert.False(t, IsEmail(e), e)
	}
}

func TestIsPhoneNumber(t *testing.T) {
	assert.True(t, IsPhoneNumber("9876543210"))
	assert.True(t, IsPhoneNumber(" 9876543210 "), "surrounding whitespace is trimmed")

	invalid := []string{"", "987654321", "98765432101", "987654321a", "+919876543210", "98765 43210"}
	for _, p := range invalid {
		assert.False(t, IsPhoneNumber(p), p)
	}
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("longenough", "longenough"))
	assert.False(t, ValidPassword("short", "short"), "under 8 characters")
	assert.False(t, ValidPassword("longenough", "different"), "confirmation mismatch")
	assert.False(t, ValidPassword("", ""))
}
