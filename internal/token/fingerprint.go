package token

import "strings"

const fingerprintLen = 6

// Fingerprint returns a short, log-safe prefix of the token's signature
// segment. Malformed tokens yield "invalid".
func Fingerprint(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "invalid"
	}
	sig := parts[2]
	if len(sig) > fingerprintLen {
		sig = sig[:fingerprintLen]
	}
	return sig
}
