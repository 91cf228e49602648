package otpauth

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
)

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := otp.DecodeBase32(s)
	if err != nil {
		t.Fatalf("DecodeBase32(%q) error = %v", s, err)
	}
	return b
}

func TestParse_EndToEnd(t *testing.T) {
	t.Parallel()
	c, err := Parse("otpauth://totp/Alice?secret=JBSWY3DPEHPK3PXP&issuer=Example")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if c.Name != "Alice" {
		t.Errorf("Name = %q, want %q", c.Name, "Alice")
	}
	if c.Issuer != "Example" {
		t.Errorf("Issuer = %q, want %q", c.Issuer, "Example")
	}
	if want := mustDecode(t, "JBSWY3DPEHPK3PXP"); !bytes.Equal(c.Secret(), want) {
		t.Errorf("Secret() = %x, want %x", c.Secret(), want)
	}
	if c.Notes != "" {
		t.Errorf("Notes = %q, want empty", c.Notes)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		raw        string
		wantName   string
		wantIssuer string
		wantSecret string
		wantErr    error
	}{
		{
			name:       "unknown parameters ignored",
			raw:        "otpauth://totp/Alice?secret=JBSWY3DPEHPK3PXP&algorithm=SHA1&digits=6&period=30",
			wantName:   "Alice",
			wantSecret: "JBSWY3DPEHPK3PXP",
		},
		{
			name:       "issuer before secret",
			raw:        "otpauth://totp/Alice?issuer=Example&secret=JBSWY3DPEHPK3PXP",
			wantName:   "Alice",
			wantIssuer: "Example",
			wantSecret: "JBSWY3DPEHPK3PXP",
		},
		{
			name:       "lower case secret",
			raw:        "otpauth://totp/Alice?secret=jbswy3dpehpk3pxp",
			wantName:   "Alice",
			wantSecret: "JBSWY3DPEHPK3PXP",
		},
		{
			name:       "percent encoded label",
			raw:        "otpauth://totp/ACME%20Co:john@example.com?secret=JBSWY3DPEHPK3PXP&issuer=ACME%20Co",
			wantName:   "ACME Co:john@example.com",
			wantIssuer: "ACME Co",
			wantSecret: "JBSWY3DPEHPK3PXP",
		},
		{
			name:       "plus in issuer decodes to space",
			raw:        "otpauth://totp/a?secret=MZXW6&issuer=Big+Corp",
			wantName:   "a",
			wantIssuer: "Big Corp",
			wantSecret: "MZXW6",
		},
		{
			name:       "empty label",
			raw:        "otpauth://totp?secret=JBSWY3DPEHPK3PXP",
			wantSecret: "JBSWY3DPEHPK3PXP",
		},
		{
			name:       "repeated secret last wins",
			raw:        "otpauth://totp/a?secret=MZXW6&secret=JBSWY3DPEHPK3PXP",
			wantName:   "a",
			wantSecret: "JBSWY3DPEHPK3PXP",
		},
		{
			name:       "earlier invalid secret overwritten",
			raw:        "otpauth://totp/a?secret=!!!&secret=MZXW6",
			wantName:   "a",
			wantSecret: "MZXW6",
		},
		{
			name:       "scheme is case-insensitive",
			raw:        "OTPAUTH://totp/a?secret=MZXW6",
			wantName:   "a",
			wantSecret: "MZXW6",
		},
		{name: "hotp rejected", raw: "otpauth://hotp/Alice?secret=JBSWY3DPEHPK3PXP&counter=1", wantErr: ErrUnsupportedType},
		{name: "host is case-sensitive", raw: "otpauth://TOTP/Alice?secret=JBSWY3DPEHPK3PXP", wantErr: ErrUnsupportedType},
		{name: "opaque url", raw: "otpauth:totp/Alice?secret=JBSWY3DPEHPK3PXP", wantErr: ErrMalformedURL},
		{name: "missing secret", raw: "otpauth://totp/Alice?issuer=Example", wantErr: ErrMissingSecret},
		{name: "no query", raw: "otpauth://totp/Alice", wantErr: ErrMissingSecret},
		{name: "empty secret", raw: "otpauth://totp/Alice?secret=&issuer=Example", wantErr: ErrMissingSecret},
		{name: "secret without value", raw: "otpauth://totp/Alice?secret", wantErr: ErrMissingSecret},
		{name: "invalid secret", raw: "otpauth://totp/Alice?secret=JBSWY3DP1", wantErr: ErrInvalidSecretEncoding},
		{name: "truncated secret", raw: "otpauth://totp/Alice?secret=JBS", wantErr: ErrInvalidSecretEncoding},
		{name: "bad escape in path", raw: "otpauth://totp/%zz?secret=MZXW6", wantErr: ErrMalformedURL},
		{name: "bad escape in query", raw: "otpauth://totp/a?secret=MZ%zz", wantErr: ErrMalformedURL},
		{name: "wrong scheme", raw: "https://totp/a?secret=MZXW6", wantErr: ErrMalformedURL},
		{name: "not a url", raw: "JBSWY3DPEHPK3PXP", wantErr: ErrMalformedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := Parse(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.raw, err)
			}
			if c.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", c.Name, tt.wantName)
			}
			if c.Issuer != tt.wantIssuer {
				t.Errorf("Issuer = %q, want %q", c.Issuer, tt.wantIssuer)
			}
			if want := mustDecode(t, tt.wantSecret); !bytes.Equal(c.Secret(), want) {
				t.Errorf("Secret() = %x, want %x", c.Secret(), want)
			}
		})
	}
}

func TestParse_InvalidSecretKeepsCause(t *testing.T) {
	t.Parallel()
	_, err := Parse("otpauth://totp/Alice?secret=AB1")
	if !errors.Is(err, ErrInvalidSecretEncoding) {
		t.Fatalf("error = %v, want ErrInvalidSecretEncoding", err)
	}
	if !errors.Is(err, otp.ErrInvalidCharacter) {
		t.Errorf("error = %v, want it to wrap otp.ErrInvalidCharacter", err)
	}
	var charErr *otp.InvalidCharacterError
	if !errors.As(err, &charErr) || charErr.Char != '1' {
		t.Errorf("errors.As(*otp.InvalidCharacterError) failed for %v", err)
	}
}

func TestParse_ErrorsDoNotContainSecret(t *testing.T) {
	t.Parallel()
	const secret = "JBSWY3DPEHPK3PXP"
	inputs := []string{
		"otpauth://totp/Al%zzice?secret=" + secret + "&issuer=Example",
		"otpauth://totp/Alice?secret=" + secret + "&issuer=%zz",
		"otpauth:totp/Alice?secret=" + secret,
		"otpauth://hotp/Alice?secret=" + secret,
		"https://totp/Alice?secret=" + secret,
		"otpauth://totp/Alice?secret=" + secret + "1",
	}

	for _, raw := range inputs {
		_, err := Parse(raw)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", raw)
			continue
		}
		if strings.Contains(err.Error(), secret) {
			t.Errorf("Parse error leaks the secret: %v", err)
		}
	}
}

func TestParse_BadEscapeKeepsCause(t *testing.T) {
	t.Parallel()
	_, err := Parse("otpauth://totp/Al%zzice?secret=JBSWY3DPEHPK3PXP")
	if !errors.Is(err, ErrMalformedURL) {
		t.Fatalf("error = %v, want ErrMalformedURL", err)
	}
	var escErr url.EscapeError
	if !errors.As(err, &escErr) {
		t.Errorf("error = %v, want it to wrap url.EscapeError", err)
	}
}

type spyLogger struct {
	lines []string
}

func (s *spyLogger) Debug(msg string, v ...interface{}) {
	s.lines = append(s.lines, fmt.Sprintf(msg, v...))
}

func TestParser_LogsIgnoredNamesOnly(t *testing.T) {
	t.Parallel()
	spy := &spyLogger{}
	p := Parser{Logger: spy}

	_, err := p.Parse("otpauth://totp/a?secret=MZXW6&digits=8&secert=JBSWY3DPEHPK3PXP")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(spy.lines) != 2 {
		t.Fatalf("logged %d lines, want 2: %v", len(spy.lines), spy.lines)
	}
	for _, l := range spy.lines {
		if strings.Contains(l, "JBSWY3DP") || strings.Contains(l, "MZXW6") {
			t.Errorf("log line %q contains a secret", l)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, issuer string
	}{
		{"Alice", "Example"},
		{"john@example.com", ""},
		{"ACME Co:john", "ACME Co"},
		{"a/b?c#d", "x&y=z"},
		{"", "Issuer only"},
	}

	for _, tt := range tests {
		secret := []byte{0, 1, 2, 250, 251, 252, 253}
		c, err := credential.New(tt.name, tt.issuer, secret, "notes are not exported")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		raw := Format(c)
		if strings.Contains(raw, "notes") {
			t.Errorf("Format() = %q, contains notes", raw)
		}

		got, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(Format()) of %q error = %v", raw, err)
		}
		if got.Name != tt.name || got.Issuer != tt.issuer || !bytes.Equal(got.Secret(), secret) {
			t.Errorf("round trip of %q = name %q issuer %q secret %x", raw, got.Name, got.Issuer, got.Secret())
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	c, _ := credential.New("Alice", "Example", mustDecode(t, "JBSWY3DPEHPK3PXP"), "")
	want := "otpauth://totp/Alice?issuer=Example&secret=JBSWY3DPEHPK3PXP"
	if got := Format(c); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
