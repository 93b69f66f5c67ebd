// Package validate holds advisory checks for contact details and links.
// Callers report failures; nothing is rejected.
package validate

import "regexp"

var (
	urlRe = regexp.MustCompile(`(?i)^https?://` +
		`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)

	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// URL reports whether s looks like an http or https URL.
func URL(s string) bool {
	return urlRe.MatchString(s)
}

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}
