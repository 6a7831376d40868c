package handlers

import (
	"strings"
	"unicode/utf8"
)

// Limits for values taken from the request path and query.
const (
	maxIDLen   = 300
	maxTermLen = 100
	maxPageNum = 100_000
)

// validateID checks an entry id from the URL and returns the first
// problem found.
func validateID(id string) string {
	if strings.TrimSpace(id) == "" {
		return "Id is required."
	}
	if utf8.RuneCountInString(id) > maxIDLen {
		return "Id is too long (max 300 characters)."
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "Id contains an empty or relative segment."
		}
	}
	return ""
}

// validateTerm checks a tag, category or series value from the URL.
func validateTerm(term string) string {
	if strings.TrimSpace(term) == "" {
		return "Value is required."
	}
	if utf8.RuneCountInString(term) > maxTermLen {
		return "Value is too long (max 100 characters)."
	}
	return ""
}

// validatePage checks a parsed page number before it reaches pagination.
// Pages below 1 are left to pagination, which reports them as missing.
func validatePage(n int) string {
	if n > maxPageNum {
		return "Page number is too large."
	}
	return ""
}
