// Package credential defines the TOTP credential record shared by the
// URL parser, manual entry and the display commands.
package credential

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaearon/otpz/internal/otp"
	"github.com/google/uuid"
)

var (
	ErrEmptySecret = errors.New("secret must not be empty")
	ErrMissingName = errors.New("name is required")
)

// Credential is a named TOTP shared secret. The secret is fixed at
// creation; only Name, Issuer and Notes change afterwards.
type Credential struct {
	ID        uuid.UUID
	Name      string
	Issuer    string
	Notes     string
	CreatedAt time.Time

	secret []byte
}

// New creates a credential from an already decoded secret. The secret is
// copied. Name may be empty, as it is for unlabelled otpauth URLs.
func New(name, issuer string, secret []byte, notes string) (*Credential, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	return &Credential{
		ID:        uuid.New(),
		Name:      name,
		Issuer:    issuer,
		Notes:     notes,
		CreatedAt: time.Now(),
		secret:    append([]byte(nil), secret...),
	}, nil
}

// FromBase32 is the manual entry path: the secret arrives as Base32 text
// typed by the user. Decoding errors are returned as-is.
func FromBase32(name, issuer, secretText, notes string) (*Credential, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}

	secret, err := otp.DecodeBase32(secretText)
	if err != nil {
		return nil, err
	}

	return New(name, issuer, secret, notes)
}

// Secret returns a copy of the decoded shared key.
func (c *Credential) Secret() []byte {
	return append([]byte(nil), c.secret...)
}

// SetName renames the credential. Empty names are rejected.
func (c *Credential) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	c.Name = name
	return nil
}

func (c *Credential) SetIssuer(issuer string) { c.Issuer = issuer }

func (c *Credential) SetNotes(notes string) { c.Notes = notes }

// Code returns the TOTP code for the window containing t.
func (c *Credential) Code(t time.Time) uint32 {
	return otp.TOTP(c.secret, otp.UnixMillis(t))
}

// Remaining returns the fraction of the window containing t still left.
func (c *Credential) Remaining(t time.Time) float64 {
	return otp.RemainingFraction(otp.UnixMillis(t))
}

// Label is the display name: "Issuer (Name)", or just whichever is set.
func (c *Credential) Label() string {
	switch {
	case c.Issuer == "":
		return c.Name
	case c.Name == "":
		return c.Issuer
	default:
		return fmt.Sprintf("%s (%s)", c.Issuer, c.Name)
	}
}

// String omits the secret.
func (c *Credential) String() string {
	return fmt.Sprintf("credential{id=%s name=%q issuer=%q}", c.ID, c.Name, c.Issuer)
}

// LogValue keeps the secret out of structured logs.
func (c *Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID.String()),
		slog.String("name", c.Name),
		slog.String("issuer", c.Issuer),
	)
}
