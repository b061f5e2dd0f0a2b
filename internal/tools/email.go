package tools

import (
	"context"
	"regexp"
	"strings"

	"github.com/rekabot/rekabot/internal/schema"
)

// reEmail is a pragmatic syntax check, not an RFC 5322 validator.
var reEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailValidatorTool checks whether a string looks like a deliverable email
// address. Purely syntactic — no DNS or SMTP probing.
type EmailValidatorTool struct{}

// NewEmailValidatorTool creates an EmailValidatorTool.
func NewEmailValidatorTool() *EmailValidatorTool { return &EmailValidatorTool{} }

func (t *EmailValidatorTool) Name() string { return string(ToolEmailValidator) }
func (t *EmailValidatorTool) Description() string {
	return "Validate the syntax of an email address"
}
func (t *EmailValidatorTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"email": {Type: "string", Description: "Email address to validate"},
		},
		Required: []string{"email"},
	}
}

func (t *EmailValidatorTool) Execute(_ context.Context, args map[string]any) schema.Result {
	email := strings.TrimSpace(stringArg(args, "email"))

	valid := reEmail.MatchString(email)
	reason := "well-formed address"
	switch {
	case email == "":
		reason = "address is empty"
	case !strings.Contains(email, "@"):
		reason = "missing @"
	case !valid:
		reason = "malformed local part or domain"
	}

	result := schema.Result{
		"success": true,
		"email":   email,
		"valid":   valid,
		"reason":  reason,
	}
	if valid {
		at := strings.LastIndex(email, "@")
		result["local"] = email[:at]
		result["domain"] = email[at+1:]
	}
	return result
}
