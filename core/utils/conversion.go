package utils

import (
	"strings"
	"unicode"
)

// LenientInt parses an integer out of a token scraped from license server
// output. Thousands separators are stripped and anything after the leading
// digit run is ignored, so "1,000", "93" and "500(0/sec)" all parse.
// Returns false when the token carries no leading digits at all.
func LenientInt(token string) (int, bool) {
	s := strings.TrimSpace(token)
	s = strings.ReplaceAll(s, ",", "")

	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n := 0
	for _, r := range s[:end] {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// StripDomain reduces a fully qualified hostname to its short form so vendor
// checkout records can be matched against scheduler-side hostnames.
// "node042.hpc.example.com" becomes "node042"; bare hostnames pass through.
func StripDomain(host string) string {
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}
