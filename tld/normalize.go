package tld

import (
	"strings"

	"golang.org/x/net/idna"
)

const acePrefix = "xn--"

// NormalizeHost lowercases host and, when the host or any of its
// dot-delimited labels is ACE-encoded (punycode, "xn--" prefix), converts
// the whole host to its Unicode form. A failed conversion keeps the
// lowercase ACE form as-is; normalization never fails.
func NormalizeHost(host string) string {
	host = strings.ToLower(host)
	if !hasACELabel(host) {
		return host
	}

	unicode, err := idna.ToUnicode(host)
	if err != nil {
		return host
	}

	return unicode
}

func hasACELabel(host string) bool {
	if strings.HasPrefix(host, acePrefix) {
		return true
	}

	return strings.Contains(host, "."+acePrefix)
}
