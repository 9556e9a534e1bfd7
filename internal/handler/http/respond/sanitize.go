package respond

import (
	"regexp"
)

// Credential patterns masked before error messages reach logs.
// The Anthropic pattern must be applied before the generic sk- pattern.
var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Password embedded in a connection string DSN.
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)

	// Bearer tokens in upstream error dumps.
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]+`)
)

// SanitizeError returns the error message with credentials masked.
// It covers AI provider API keys, DSN passwords, and bearer tokens.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")

	return msg
}
