package validate

import "strings"

// NormalizePhone strips spaces, dashes and an Indian country prefix.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	s = strings.TrimPrefix(s, "+91")
	return s
}

// PhoneComplete reports whether s is a complete 10-digit mobile number.
func PhoneComplete(s string) bool {
	n := NormalizePhone(s)
	if len(n) != 10 {
		return false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
