package lib

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// stripDiacritics decomposes the string and drops combining marks, so
// "Áo thun" becomes "Ao thun". đ/Đ are not decomposable and are replaced
// separately.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// Slugify creates a URL-friendly slug from a display name. The output
// contains only lowercase alphanumerics and single hyphens, with no leading
// or trailing hyphen. Slugify is idempotent: Slugify(Slugify(s)) == Slugify(s).
//
// Examples:
//   - "Pants & Leggings" -> "pants-leggings"
//   - "Áo thun nữ"       -> "ao-thun-nu"
//   - "Đầm dạ hội"       -> "dam-da-hoi"
func Slugify(name string) string {
	s := strings.TrimSpace(dReplacer.Replace(name))

	if ascii, _, err := transform.String(stripDiacritics, s); err == nil {
		s = ascii
	}

	s = strings.ToLower(s)
	s = slugPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}
