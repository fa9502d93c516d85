package util

import (
	"crypto/rand"
	"fmt"
)

// PsuUUID generates a pseudo-UUID from random bytes; it is not a compliant
// RFC 4122 implementation but is unique enough for session tracking
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}
