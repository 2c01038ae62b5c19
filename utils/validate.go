package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
)

func IsEmail(input string) bool {
	return emailRegex.MatchString(strings.TrimSpace(input))
}

// IsPhoneNumber requires exactly 10 digits.
func IsPhoneNumber(input string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(input))
}

// ValidPassword requires at least 8 characters and an exact match with
// the confirmation.
func ValidPassword(password, confirm string) bool {
	return len(password) >= 8 && password == confirm
}
