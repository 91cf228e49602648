package otp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter matches any *InvalidCharacterError.
	ErrInvalidCharacter = errors.New("invalid base32 character")
	// ErrIncompleteEncoding matches any *IncompleteEncodingError.
	ErrIncompleteEncoding = errors.New("incomplete base32 encoding")
)

// InvalidCharacterError reports a symbol outside the Base32 alphabet.
type InvalidCharacterError struct {
	Char rune
	Pos  int // byte offset into the input
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrInvalidCharacter, e.Char, e.Pos)
}

func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// IncompleteEncodingError reports leftover bits that cannot be padding.
type IncompleteEncodingError struct {
	Bits int
}

func (e *IncompleteEncodingError) Error() string {
	return fmt.Sprintf("%v: %d trailing bits", ErrIncompleteEncoding, e.Bits)
}

func (e *IncompleteEncodingError) Is(target error) bool {
	return target == ErrIncompleteEncoding
}
