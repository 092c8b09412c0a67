package logging

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "j***@acme.com". Values without an @ are fully masked.
func MaskEmail(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return "***"
	}
	_, size := utf8.DecodeRuneInString(addr)
	return addr[:size] + "***" + addr[at:]
}

// HashPII returns a short stable fingerprint for correlating log lines
// without storing the raw value.
func HashPII(value string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(value))))
	return fmt.Sprintf("%x", h[:6])
}
