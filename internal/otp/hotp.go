// Package otp implements the one-time password engine: Base32 secret
// decoding, HOTP (RFC 4226) and TOTP (RFC 6238) code derivation.
//
// Everything here is a pure function of its inputs and safe for
// concurrent use.
package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
)

// Digits is the number of decimal digits in a generated code.
const Digits = 6

const modulus = 1_000_000

// HOTP computes the RFC 4226 code for secret and counter. The result is
// in [0, 999999]; zero padding is left to FormatCode.
func HOTP(secret []byte, counter uint64) uint32 {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: low nibble of the last byte selects a 31-bit window.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return code % modulus
}
