package tools

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/rekabot/rekabot/internal/schema"
)

const (
	passwordMinLength     = 8
	passwordMaxLength     = 64
	passwordDefaultLength = 16

	passwordLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordSymbols = "!@#$%^&*()-_=+[]{}"
)

// PasswordTool generates a random password with crypto/rand.
type PasswordTool struct{}

// NewPasswordTool creates a PasswordTool.
func NewPasswordTool() *PasswordTool { return &PasswordTool{} }

func (t *PasswordTool) Name() string { return string(ToolPassword) }
func (t *PasswordTool) Description() string {
	return "Generate a cryptographically random password"
}
func (t *PasswordTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"length":          {Type: "number", Description: "Password length (8-64, default 16)"},
			"include_symbols": {Type: "boolean", Description: "Include punctuation symbols (default true)"},
		},
	}
}

func (t *PasswordTool) Execute(_ context.Context, args map[string]any) schema.Result {
	length := passwordDefaultLength
	if n, ok := args["length"].(float64); ok {
		length = int(n)
	}
	if length < passwordMinLength || length > passwordMaxLength {
		return schema.Errorf("length must be between %d and %d", passwordMinLength, passwordMaxLength)
	}

	includeSymbols := true
	if b, ok := args["include_symbols"].(bool); ok {
		includeSymbols = b
	}

	alphabet := passwordLetters
	if includeSymbols {
		alphabet += passwordSymbols
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return schema.Errorf("random source failed: %v", err)
		}
		out[i] = alphabet[idx.Int64()]
	}

	strength := "medium"
	switch {
	case length >= 20 && includeSymbols:
		strength = "very strong"
	case length >= 14:
		strength = "strong"
	}

	return schema.Result{
		"success":   true,
		"password":  string(out),
		"length":    length,
		"strength":  strength,
		"formatted": fmt.Sprintf("Generated a %d-character password (%s)", length, strength),
	}
}
