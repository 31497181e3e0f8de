// Package redact masks credentials, wallet addresses and e-mail addresses
// before they reach logs or shared reports.
package redact

import "regexp"

var (
	secretPatterns []*regexp.Regexp

	// user:password@ inside a connection URL
	urlPasswordPattern = regexp.MustCompile(`(://[^:/@\s]+):[^@\s]+@`)
	addressPattern     = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)
	emailPattern       = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

func init() {
	raw := []string{
		// Bearer tokens
		`Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		// Generic key/secret/token/password assignments
		`(?i)(api[_-]?key|secret|token|password|passwd)\s*[:=]\s*\S+`,
	}
	for _, r := range raw {
		secretPatterns = append(secretPatterns, regexp.MustCompile(r))
	}
}

// Address shortens a wallet address to its first 6 and last 4 characters,
// the way wallets display it. Strings too short to mask are returned as is.
func Address(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// Redact replaces secrets and e-mail addresses with [REDACTED] and shortens
// wallet addresses.
func Redact(text string) string {
	text = urlPasswordPattern.ReplaceAllString(text, "$1:[REDACTED]@")
	for _, p := range secretPatterns {
		text = p.ReplaceAllString(text, "[REDACTED]")
	}
	text = addressPattern.ReplaceAllStringFunc(text, Address)
	return emailPattern.ReplaceAllString(text, "[REDACTED]")
}
