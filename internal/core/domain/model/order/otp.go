package order

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// otpAlphabet is the character set for delivery OTPs. Uppercase letters and
// digits keep the code easy to read aloud at the gate.
const otpAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// OTPLength is the fixed length of a delivery OTP.
const OTPLength = 6

// GenerateOTP produces a random 6-character one-time password from the
// uppercase alphanumeric alphabet. The OTP proves physical handoff between
// the delivery agent and the customer.
//
// Randomness comes from crypto/rand so codes are not guessable from prior
// observations.
func GenerateOTP() (string, error) {
	buf := make([]byte, OTPLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	var sb strings.Builder
	sb.Grow(OTPLength)
	for _, b := range buf {
		sb.WriteByte(otpAlphabet[int(b)%len(otpAlphabet)])
	}
	return sb.String(), nil
}

// VerifyOTP reports whether the submitted code matches the stored one.
// Comparison is case-insensitive so a code read aloud or typed in lowercase
// still verifies.
func VerifyOTP(submitted, stored string) bool {
	if stored == "" {
		return false
	}
	return strings.EqualFold(submitted, stored)
}
