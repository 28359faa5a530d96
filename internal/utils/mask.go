package utils

import "fmt"

// MaskSecret renders a secret for config tracing without revealing it.
func MaskSecret(secret string) string {
	switch {
	case secret == "":
		return "--- EMPTY (!!! WARNING: secret is empty !!!) ---"
	case secret == "default-secret":
		return "default-secret (!!! WARNING: Using default secret !!!)"
	case len(secret) < 8:
		return fmt.Sprintf("*** MASKED (short: %d chars) ***", len(secret))
	default:
		return "*** MASKED ***"
	}
}
