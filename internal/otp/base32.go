package otp

import "encoding/base32"

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var noPadding = base32.NewEncoding(base32Alphabet).WithPadding(base32.NoPadding)

// base32Value maps an upper- or lower-case symbol to its 5-bit value.
func base32Value(r rune) (uint32, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return uint32(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return uint32(r - 'a'), true
	case r >= '2' && r <= '7':
		return uint32(r-'2') + 26, true
	default:
		return 0, false
	}
}

// DecodeBase32 decodes unpadded RFC 4648 Base32 text. Decoding is
// case-insensitive. Up to 4 trailing bits are treated as padding of the
// last symbol and dropped; 5 or more mean the input was truncated.
func DecodeBase32(text string) ([]byte, error) {
	out := make([]byte, 0, len(text)*5/8)

	var acc uint32
	pending := 0
	for pos, r := range text {
		v, ok := base32Value(r)
		if !ok {
			return nil, &InvalidCharacterError{Char: r, Pos: pos}
		}

		acc = acc<<5 | v
		pending += 5
		if pending >= 8 {
			pending -= 8
			out = append(out, byte(acc>>pending))
			acc &= 1<<pending - 1
		}
	}

	if pending >= 5 {
		return nil, &IncompleteEncodingError{Bits: pending}
	}

	return out, nil
}

// EncodeBase32 is the inverse of DecodeBase32. Output is upper-case and unpadded.
func EncodeBase32(b []byte) string {
	return noPadding.EncodeToString(b)
}
