package generator

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"
)

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

	// TokenSuffixLength is the number of random characters after the event tag.
	TokenSuffixLength = 12
)

// EventTag builds the upper-case token prefix for an event, e.g. "PICKHACKS2025".
// Characters other than letters and digits are dropped from prefix.
func EventTag(prefix string, year int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(prefix) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s%d", b.String(), year)
}

// QRToken returns a check-in token in the form "{tag}-{12 random chars}".
func QRToken(tag string) (string, error) {
	suffix, err := randomString(TokenSuffixLength)
	if err != nil {
		return "", err
	}
	return tag + "-" + suffix, nil
}

func randomString(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// len(tokenAlphabet) is 64, masking keeps the distribution uniform
	for i := range buf {
		buf[i] = tokenAlphabet[buf[i]&63]
	}
	return string(buf), nil
}
