package ui

import (
	"errors"
	"fmt"

	"github.com/Iilun/survey/v2"
	"github.com/aaearon/otpz/internal/otp"
)

// ManualEntry is the raw input of the add form. The secret is still Base32 text.
type ManualEntry struct {
	Name   string
	Issuer string
	Secret string
	Notes  string
}

// ValidateSecret is a survey validator rejecting text that is not usable Base32.
func ValidateSecret(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return errors.New("secret must be text")
	}
	b, err := otp.DecodeBase32(s)
	if err != nil {
		return fmt.Errorf("secret is not valid: %w", err)
	}
	if len(b) == 0 {
		return errors.New("secret is required")
	}
	return nil
}

// PromptManualEntry asks for the fields of a new credential. Values already
// present in prefill are used as defaults.
func PromptManualEntry(prefill ManualEntry) (ManualEntry, error) {
	if !IsInteractive() {
		return ManualEntry{}, ErrNotInteractive
	}

	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Name:", Default: prefill.Name},
			Validate: survey.Required,
		},
		{
			Name:     "secret",
			Prompt:   &survey.Password{Message: "Secret:", Help: "Base32 key shown by the service, letters A-Z and digits 2-7"},
			Validate: ValidateSecret,
		},
		{
			Name:   "issuer",
			Prompt: &survey.Input{Message: "Issuer:", Default: prefill.Issuer},
		},
		{
			Name:   "notes",
			Prompt: &survey.Multiline{Message: "Notes:", Default: prefill.Notes},
		},
	}

	if prefill.Secret != "" {
		// Never echo a secret back as a default.
		questions = append(questions[:1], questions[2:]...)
	}

	answers := struct {
		Name   string `survey:"name"`
		Secret string `survey:"secret"`
		Issuer string `survey:"issuer"`
		Notes  string `survey:"notes"`
	}{Secret: prefill.Secret}

	if err := survey.Ask(questions, &answers); err != nil {
		return ManualEntry{}, fmt.Errorf("failed to read account details: %w", err)
	}

	return ManualEntry{
		Name:   answers.Name,
		Issuer: answers.Issuer,
		Secret: answers.Secret,
		Notes:  answers.Notes,
	}, nil
}
