package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otpauth"
)

// AccountLineError reports an accounts file line that is not a valid otpauth URL.
type AccountLineError struct {
	Line int
	Err  error
}

func (e *AccountLineError) Error() string {
	return fmt.Sprintf("accounts line %d: %v", e.Line, e.Err)
}

func (e *AccountLineError) Unwrap() error { return e.Err }

// LoadAccounts reads credentials from an accounts file: one otpauth URL
// per line, blank lines and lines starting with # ignored. The file is
// only ever read. A missing file yields no accounts.
func LoadAccounts(path string, parser otpauth.Parser) ([]*credential.Credential, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer f.Close()

	return ReadAccounts(f, parser)
}

// ReadAccounts parses accounts from r and returns them sorted by name.
func ReadAccounts(r io.Reader, parser otpauth.Parser) ([]*credential.Credential, error) {
	var accounts []*credential.Credential

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		c, err := parser.Parse(text)
		if err != nil {
			return nil, &AccountLineError{Line: line, Err: err}
		}
		accounts = append(accounts, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	credential.SortByName(accounts)
	return accounts, nil
}
