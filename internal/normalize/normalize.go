package normalize

import "strings"

// ServiceCategoryURL canonicalizes a customer's service-category link.
// Whitespace is trimmed first. An empty value stays empty, signalling that
// the field should be absent from the stored record. A non-empty value
// without an "http" scheme prefix is made absolute with "https://".
// Examples:
//
//	""                    -> ""
//	"example.com"         -> "https://example.com"
//	"http://example.com"  -> "http://example.com"
func ServiceCategoryURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http") {
		return "https://" + s
	}
	return s
}
