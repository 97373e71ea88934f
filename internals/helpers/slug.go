package helper

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonWord = regexp.MustCompile(`[^\w-]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
	reHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug menurunkan slug dari nama kategori:
// lowercase, spasi → "-", buang karakter selain huruf/angka/underscore/hyphen.
// Diakritik dinormalisasi dulu (é → e) supaya slug tetap URL-safe.
func GenerateSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reSpaces.ReplaceAllString(s, "-")
	s = reNonWord.ReplaceAllString(s, "")
	s = reHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
