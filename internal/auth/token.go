package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Session tokens are opaque: 32 random bytes, hex encoded. The token
// carries no claims; it is only a lookup key into the session store.
const tokenByteLen = 32

var tokenFormatRegex = regexp.MustCompile(`^[a-f0-9]{64}$`)

// GenerateSessionToken creates a new opaque session token.
func GenerateSessionToken() (string, error) {
	raw := make([]byte, tokenByteLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// ValidTokenFormat reports whether a cookie value looks like a token we
// issued. Malformed values are rejected before any store lookup.
func ValidTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
