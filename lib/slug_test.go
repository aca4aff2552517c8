package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii with symbols", "Pants & Leggings", "pants-leggings"},
		{"vietnamese diacritics", "Áo thun nữ", "ao-thun-nu"},
		{"d with stroke", "Đầm dạ hội", "dam-da-hoi"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"numbers kept", "Set 3 món", "set-3-mon"},
		{"empty", "", ""},
		{"only symbols", "&&&", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Pants & Leggings",
		"Áo thun nữ",
		"Đồ bộ dài",
		"already-a-slug",
		"Mixed CASE With Spaces",
	}

	for _, input := range inputs {
		once := Slugify(input)
		assert.Equal(t, once, Slugify(once), "Slugify must be idempotent for %q", input)
	}
}

func TestSlugifyOutputAlphabet(t *testing.T) {
	for _, input := range []string{"Váy đầm", "A/B/C", "100358 - Women Clothes", "ơ ư ă â ê ô"} {
		slug := Slugify(input)
		for _, r := range slug {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected rune %q in slug %q", r, slug)
		}
		assert.NotEqual(t, "-", slug)
		if slug != "" {
			assert.NotEqual(t, byte('-'), slug[0])
			assert.NotEqual(t, byte('-'), slug[len(slug)-1])
		}
	}
}
