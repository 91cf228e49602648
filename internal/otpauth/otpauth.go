// Package otpauth converts between otpauth:// key URIs and credentials.
//
// Only the totp type is supported. The algorithm, digits and period
// parameters are accepted but not interpreted: codes are always
// HMAC-SHA1, six digits, 30 second steps.
package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
)

const (
	Scheme   = "otpauth"
	TypeTOTP = "totp"
)

var (
	ErrMalformedURL          = errors.New("malformed otpauth URL")
	ErrUnsupportedType       = errors.New("unsupported OTP type")
	ErrMissingSecret         = errors.New("missing secret")
	ErrInvalidSecretEncoding = errors.New("invalid secret encoding")
)

// Logger receives debug output about ignored parameters. Parameter values
// are never passed to it.
type Logger interface {
	Debug(msg string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Parser parses otpauth URLs. The zero value is ready to use.
type Parser struct {
	Logger Logger
}

// Parse parses raw with a zero Parser.
func Parse(raw string) (*credential.Credential, error) {
	return Parser{}.Parse(raw)
}

// Parse turns an otpauth://totp/<label>?secret=...&issuer=... URL into a
// credential. Unknown query parameters are ignored; when a parameter is
// repeated the last occurrence wins, so only the last secret is decoded
// and earlier malformed values are ignored. Errors never contain raw.
func (p Parser) Parse(raw string) (*credential.Credential, error) {
	log := p.Logger
	if log == nil {
		log = nopLogger{}
	}

	u, err := url.Parse(raw)
	if err != nil {
		// *url.Error quotes the whole URL, secret included.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}
	if !strings.EqualFold(u.Scheme, Scheme) {
		return nil, fmt.Errorf("%w: scheme %q, want %q", ErrMalformedURL, u.Scheme, Scheme)
	}
	if u.Opaque != "" {
		return nil, fmt.Errorf("%w: missing // after scheme", ErrMalformedURL)
	}
	if u.Host != TypeTOTP {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, u.Host)
	}

	params, err := scanQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}

	var (
		secretText string
		hasSecret  bool
		issuer     string
	)
	for _, kv := range params {
		switch kv.name {
		case "secret":
			secretText, hasSecret = kv.value, true
		case "issuer":
			issuer = kv.value
		default:
			log.Debug("ignoring otpauth parameter %q", kv.name)
		}
	}

	if !hasSecret {
		return nil, ErrMissingSecret
	}
	secret, err := otp.DecodeBase32(secretText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecretEncoding, err)
	}
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	name := strings.TrimPrefix(u.Path, "/")
	return credential.New(name, issuer, secret, "")
}

type param struct {
	name, value string
}

// scanQuery splits a raw query into decoded name/value pairs, keeping the
// order in which they appear. url.ParseQuery groups by name and loses it.
func scanQuery(raw string) ([]param, error) {
	var params []param
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}

		name, value, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(name)
		if err != nil {
			return nil, err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		params = append(params, param{name: name, value: value})
	}
	return params, nil
}
