package importer

import (
	"testing"

	"anhthu_server/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDimension(t *testing.T) {
	cases := []struct {
		raw       string
		canonical string
		known     bool
	}{
		{"Màu", DimensionColor, true},
		{"màu sắc", DimensionColor, true},
		{"Color", DimensionColor, true},
		{"Size", DimensionSize, true},
		{"Kích cỡ", DimensionSize, true},
		{"Kích thước", DimensionSize, true},
		{"Chất liệu", "Chất liệu", false},
	}

	for _, tc := range cases {
		dim := NormalizeDimension(tc.raw)
		assert.Equal(t, tc.canonical, dim.Canonical, "raw %q", tc.raw)
		assert.Equal(t, tc.known, dim.Known, "raw %q", tc.raw)
		assert.Equal(t, tc.raw, dim.Raw)
	}
}

func TestParseAttributePairs(t *testing.T) {
	attrs := ParseAttributePairs("Màu sắc:Kem|Kích cỡ:S")
	require.Len(t, attrs, 2)
	assert.Equal(t, Attribute{Name: "Màu sắc", Value: "Kem"}, attrs[0])
	assert.Equal(t, Attribute{Name: "Kích cỡ", Value: "S"}, attrs[1])
}

func TestParseAttributePairsDropsMalformed(t *testing.T) {
	attrs := ParseAttributePairs("no-colon|:empty name|Màu:|Màu:Đen")
	require.Len(t, attrs, 1)
	assert.Equal(t, "Đen", attrs[0].Value)
}

func TestParseAttributesKeepsRawNames(t *testing.T) {
	attrs := ParseAttributes("Màu sắc:Kem|Kíchcỡ:S")
	assert.Equal(t, map[string]string{"Màu sắc": "Kem", "Kíchcỡ": "S"}, attrs)
}

func TestParseAttributesEmpty(t *testing.T) {
	assert.Empty(t, ParseAttributes(""))
}

func TestOptionSetIdempotentAccumulation(t *testing.T) {
	set := NewOptionSet(NormalizeDimension("Màu"))

	for i := 0; i < 2; i++ {
		set.Add("Kem")
		set.Add("Đen")
		set.Add(" kem ") // same value, different casing and padding
	}

	assert.Equal(t, []string{"Kem", "Đen"}, set.Values())
	assert.Equal(t, 2, set.Len())
}

func mediaRow() spreadsheet.Row {
	return spreadsheet.Row{
		mkOptionCol(1, 1):      "đỏ",
		mkOptionImageCol(1, 1): "https://cdn.example.com/do.jpg",
		mkOptionCol(1, 2):      "Trắng",
		mkOptionImageCol(1, 2): "https://cdn.example.com/trang.jpg",
		mkOptionCol(2, 1):      "L",
		mkOptionImageCol(2, 1): "https://cdn.example.com/l.jpg",
	}
}

func TestMatchOptionImageCaseAndWhitespaceInsensitive(t *testing.T) {
	index := BuildOptionImageIndex(mediaRow())

	match := MatchOptionImage(index, " Đỏ ")
	assert.Equal(t, ImageMatched, match.Status)
	assert.Equal(t, "https://cdn.example.com/do.jpg", match.URL)
}

func TestMatchOptionImagePrefixFallback(t *testing.T) {
	index := BuildOptionImageIndex(mediaRow())

	// "Đen L" has no direct entry; dropping the first token finds "L".
	match := MatchOptionImage(index, "Đen L")
	assert.Equal(t, ImageMatched, match.Status)
	assert.Equal(t, "https://cdn.example.com/l.jpg", match.URL)
}

func TestMatchOptionImageNoMatch(t *testing.T) {
	index := BuildOptionImageIndex(mediaRow())

	match := MatchOptionImage(index, "Xanh")
	assert.Equal(t, ImageNoMatch, match.Status)
	assert.Empty(t, match.URL)
}

func TestMatchOptionImageAmbiguous(t *testing.T) {
	row := mediaRow()
	// The export repeats the option value with a different image.
	row[mkOptionCol(2, 2)] = "đỏ"
	row[mkOptionImageCol(2, 2)] = "https://cdn.example.com/other-do.jpg"

	index := BuildOptionImageIndex(row)

	match := MatchOptionImage(index, "Đỏ")
	assert.Equal(t, ImageAmbiguous, match.Status)
	assert.Empty(t, match.URL)
}

func TestBuildOptionImageIndexDeduplicatesSameURL(t *testing.T) {
	row := mediaRow()
	// Same value with the same image in another slot is not ambiguous.
	row[mkOptionCol(2, 2)] = "đỏ"
	row[mkOptionImageCol(2, 2)] = "https://cdn.example.com/do.jpg"

	index := BuildOptionImageIndex(row)

	match := MatchOptionImage(index, "đỏ")
	assert.Equal(t, ImageMatched, match.Status)
}
