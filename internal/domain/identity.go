package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const addressHexDigits = 40

// NormalizeIdentity trims and lower-cases a public address. Addresses are
// "0x" followed by up to 40 hex digits; a full-length address written in
// mixed case must carry a valid EIP-55 checksum.
func NormalizeIdentity(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !hasHexDigits(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, address)
	}

	lower := strings.ToLower(address)
	digits := address[2:]
	if len(digits) == addressHexDigits {
		mixed := digits != strings.ToLower(digits) && digits != strings.ToUpper(digits)
		if mixed && checksumAddress(lower)[2:] != digits {
			return "", fmt.Errorf("%w: bad checksum for %s", ErrInvalidIdentity, address)
		}
	}

	return lower, nil
}

func hasHexDigits(address string) bool {
	if len(address) < 3 || len(address) > addressHexDigits+2 || !strings.EqualFold(address[:2], "0x") {
		return false
	}
	for _, c := range address[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func checksumAddress(lower string) string {
	digits := lower[2:]

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(digits))
	hash := hex.EncodeToString(hasher.Sum(nil))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range digits {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			b.WriteRune(c - 'a' + 'A')
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
