package validation

import "strings"

// ValidateAddress checks the address query parameter. The address must be
// present; when it looks like a hex account address it must be well formed,
// but ENS-style names pass through untouched.
func ValidateAddress(address string) error {
	errors := make(map[string]string)

	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		errors["address"] = "user address is required"
	} else if strings.HasPrefix(trimmed, "0x") && !isHexAddress(trimmed) {
		errors["address"] = "invalid account address"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// isHexAddress reports whether s is 0x followed by 40 hex characters.
func isHexAddress(s string) bool {
	if len(s) != 42 {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
