// Package validate holds the string-format checks applied to request input.
//
// Both checks are deliberately syntactic. IsValidDate constrains each digit's
// leading range but does not reject calendar-impossible values like month 19
// or day 39 — that behavior is part of the API's documented contract, so it
// must not be "fixed" here.
package validate

import "regexp"

var (
	dateRe = regexp.MustCompile(`^[0-9]{4}-[0-1][0-9]-[0-3][0-9]$`)
	intRe  = regexp.MustCompile(`^[0-9]+$`)
)

// IsValidDate reports whether s looks like a yyyy-mm-dd date.
// Empty input is invalid.
func IsValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// IsValidInt reports whether s is one or more digits — no sign, no decimal
// point. Empty input is invalid.
func IsValidInt(s string) bool {
	return intRe.MatchString(s)
}
