package otpauth

import (
	"net/url"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
)

// Format builds the otpauth URL for c. Parse(Format(c)) yields the same
// name, issuer and secret.
func Format(c *credential.Credential) string {
	query := url.Values{}
	query.Set("secret", otp.EncodeBase32(c.Secret()))
	if c.Issuer != "" {
		query.Set("issuer", c.Issuer)
	}

	u := url.URL{
		Scheme:   Scheme,
		Host:     TypeTOTP,
		Path:     "/" + c.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}
