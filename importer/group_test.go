package importer

import (
	"math/rand"
	"testing"

	"anhthu_server/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posRow(code, related string, extra map[string]string) spreadsheet.Row {
	row := spreadsheet.Row{posColCode: code}
	if related != "" {
		row[posColRelatedCode] = related
	}
	for k, v := range extra {
		row[k] = v
	}
	return row
}

func TestGroupFamilies(t *testing.T) {
	rows := []spreadsheet.Row{
		posRow("A", "", nil),
		posRow("B", "A", nil),
		posRow("C", "A", nil),
		posRow("D", "", nil),
	}

	families := GroupFamilies(rows)
	require.Len(t, families, 2)

	assert.Equal(t, "A", families[0].Key)
	assert.Len(t, families[0].Rows, 3)
	assert.Equal(t, "D", families[1].Key)
	assert.Len(t, families[1].Rows, 1)
}

func TestGroupFamiliesOrderInvariant(t *testing.T) {
	rows := []spreadsheet.Row{
		posRow("A", "", nil),
		posRow("B", "A", nil),
		posRow("C", "A", nil),
		posRow("D", "", nil),
		posRow("E", "D", nil),
	}

	membership := func(families []*Family) map[string][]string {
		m := make(map[string][]string)
		for _, f := range families {
			var codes []string
			for _, row := range f.Rows {
				codes = append(codes, row.String(posColCode))
			}
			// sort for comparison, membership is a set
			for i := range codes {
				for j := i + 1; j < len(codes); j++ {
					if codes[j] < codes[i] {
						codes[i], codes[j] = codes[j], codes[i]
					}
				}
			}
			m[f.Key] = codes
		}
		return m
	}

	want := membership(GroupFamilies(rows))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]spreadsheet.Row, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, want, membership(GroupFamilies(shuffled)))
	}
}

func TestFamilyMain(t *testing.T) {
	rows := []spreadsheet.Row{
		posRow("B", "A", map[string]string{posColName: "variant"}),
		posRow("A", "", map[string]string{posColName: "anchor"}),
	}

	families := GroupFamilies(rows)
	require.Len(t, families, 1)
	assert.Equal(t, "anchor", families[0].Main().String(posColName))
}

func TestFamilyMainOrphanFallsBackToFirstRow(t *testing.T) {
	// The anchor "X" was never exported; its children still form a family
	// and the first row stands in as main.
	rows := []spreadsheet.Row{
		posRow("B", "X", map[string]string{posColName: "first child"}),
		posRow("C", "X", map[string]string{posColName: "second child"}),
	}

	families := GroupFamilies(rows)
	require.Len(t, families, 1)
	assert.Equal(t, "X", families[0].Key)
	assert.Equal(t, "first child", families[0].Main().String(posColName))
}

func TestGroupFamiliesSkipsRowsWithoutCode(t *testing.T) {
	rows := []spreadsheet.Row{
		posRow("A", "", nil),
		{posColName: "no code at all"},
	}

	families := GroupFamilies(rows)
	require.Len(t, families, 1)
}
