package importer

import (
	"strings"

	"anhthu_server/spreadsheet"
)

// Canonical variation axis names. The point-of-sale export spells them in
// Vietnamese with inconsistent casing; the marketplace exports mostly in
// English.
const (
	DimensionColor = "Color"
	DimensionSize  = "Size"
)

// Dimension is a normalized variation axis. Unknown axes keep their raw
// spelling so nothing is silently dropped.
type Dimension struct {
	Raw       string
	Canonical string
	Known     bool
}

var dimensionAliases = map[string]string{
	"màu":      DimensionColor,
	"màu sắc":  DimensionColor,
	"color":    DimensionColor,
	"colour":   DimensionColor,
	"size":     DimensionSize,
	"kích":     DimensionSize,
}

// NormalizeDimension maps a raw axis label to its canonical name. Matching is
// case-insensitive and tolerates prefixes ("Màu sắc" and "màu" both map to
// Color).
func NormalizeDimension(raw string) Dimension {
	key := strings.ToLower(strings.TrimSpace(raw))

	if canonical, ok := dimensionAliases[key]; ok {
		return Dimension{Raw: raw, Canonical: canonical, Known: true}
	}
	for alias, canonical := range dimensionAliases {
		if strings.HasPrefix(key, alias) {
			return Dimension{Raw: raw, Canonical: canonical, Known: true}
		}
	}
	return Dimension{Raw: raw, Canonical: strings.TrimSpace(raw), Known: false}
}

// Attribute is one name/value pair parsed from an attribute cell. Name keeps
// the raw spelling from the export; canonicalization happens when variants
// are assembled, so the parse layer stays lossless.
type Attribute struct {
	Name  string
	Value string
}

// ParseAttributePairs splits a point-of-sale attribute cell of the form
// "Màu:Đen|Size:M" into name/value pairs in cell order. Malformed fragments
// (no colon, empty side) are dropped.
func ParseAttributePairs(raw string) []Attribute {
	var attrs []Attribute
	for _, pair := range strings.Split(raw, "|") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}
	return attrs
}

// ParseAttributes is ParseAttributePairs collapsed to a map keyed by the raw
// name; the last value wins when a name repeats within one cell.
func ParseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, attr := range ParseAttributePairs(raw) {
		attrs[attr.Name] = attr.Value
	}
	return attrs
}

// OptionSet accumulates the distinct option values of one variation axis in
// first-seen order. Values compare case-insensitively but keep their first
// spelling.
type OptionSet struct {
	Dimension Dimension
	values    []string
	seen      map[string]struct{}
}

func NewOptionSet(dim Dimension) *OptionSet {
	return &OptionSet{Dimension: dim, seen: make(map[string]struct{})}
}

func (os *OptionSet) Add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	key := strings.ToLower(value)
	if _, ok := os.seen[key]; ok {
		return
	}
	os.seen[key] = struct{}{}
	os.values = append(os.values, value)
}

func (os *OptionSet) Values() []string {
	return os.values
}

func (os *OptionSet) Len() int {
	return len(os.values)
}

// ImageMatchStatus tags the outcome of matching an option value against the
// media export's option-image columns.
type ImageMatchStatus int

const (
	ImageMatched ImageMatchStatus = iota
	ImageNoMatch
	ImageAmbiguous
)

type ImageMatch struct {
	Status ImageMatchStatus
	URL    string
}

// BuildOptionImageIndex scans a media-export row's variation option columns
// and maps each normalized option value to the image URLs recorded for it.
// One value can map to several URLs when the export repeats the option with
// different images; MatchOptionImage reports that as ambiguous.
func BuildOptionImageIndex(row spreadsheet.Row) map[string][]string {
	index := make(map[string][]string)
	for variation := 1; variation <= mkVariationSlots; variation++ {
		for option := 1; option <= mkOptionSlots; option++ {
			value := row.String(mkOptionCol(variation, option))
			url := row.String(mkOptionImageCol(variation, option))
			if value == "" || url == "" {
				continue
			}
			key := normalizeOptionValue(value)
			if !containsURL(index[key], url) {
				index[key] = append(index[key], url)
			}
		}
	}
	return index
}

// MatchOptionImage resolves an option value to its image. When the exact
// value is absent the first whitespace token is dropped once and retried, so
// "Đen L" still matches an image recorded under "L". A value recorded with
// more than one distinct URL is ambiguous and gets no image rather than a
// wrong one.
func MatchOptionImage(index map[string][]string, value string) ImageMatch {
	urls, ok := index[normalizeOptionValue(value)]
	if !ok {
		if _, rest, found := strings.Cut(strings.TrimSpace(value), " "); found {
			urls, ok = index[normalizeOptionValue(rest)]
		}
		if !ok {
			return ImageMatch{Status: ImageNoMatch}
		}
	}
	if len(urls) > 1 {
		return ImageMatch{Status: ImageAmbiguous}
	}
	return ImageMatch{Status: ImageMatched, URL: urls[0]}
}

func normalizeOptionValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func containsURL(urls []string, url string) bool {
	for _, u := range urls {
		if u == url {
			return true
		}
	}
	return false
}
