package cmd

import "time"

// codeOutput is the JSON representation of one generated code.
type codeOutput struct {
	Name              string  `json:"name"`
	Issuer            string  `json:"issuer,omitempty"`
	Code              string  `json:"code"`
	RemainingSeconds  int     `json:"remainingSeconds"`
	RemainingFraction float64 `json:"remainingFraction"`
}

// listOutput is the JSON representation of the root command output.
type listOutput struct {
	Time     time.Time    `json:"time"`
	Accounts []codeOutput `json:"accounts"`
}

// credentialOutput is the JSON representation of a parsed or entered credential.
type credentialOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer,omitempty"`
	Notes       string `json:"notes,omitempty"`
	SecretBytes int    `json:"secretBytes"`
	Secret      string `json:"secret,omitempty"`
	URI         string `json:"uri,omitempty"`
	QRFile      string `json:"qrFile,omitempty"`
}

// exportOutput is the JSON representation of an exported credential.
type exportOutput struct {
	URI    string `json:"uri"`
	QRFile string `json:"qrFile,omitempty"`
}
