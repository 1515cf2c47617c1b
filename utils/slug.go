package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases a name and replaces runs of non-alphanumeric
// characters with single hyphens: "Red T-Shirt (XL)" -> "red-t-shirt-xl".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
