package importer

import (
	"testing"

	"anhthu_server/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexByFirstSeenWins(t *testing.T) {
	rows := []spreadsheet.Row{
		{mkColProductID: "1", mkColProductName: "first"},
		{mkColProductID: "1", mkColProductName: "second"},
		{mkColProductID: "2", mkColProductName: "other"},
		{mkColProductName: "keyless"},
	}

	index := IndexBy(rows, mkColProductID)
	require.Len(t, index, 2)
	assert.Equal(t, "first", index["1"].String(mkColProductName))
}

func TestGroupRowsBy(t *testing.T) {
	rows := []spreadsheet.Row{
		{mkColProductID: "1", mkColVariantSKU: "a"},
		{mkColProductID: "1", mkColVariantSKU: "b"},
		{mkColProductID: "2", mkColVariantSKU: "c"},
	}

	groups := GroupRowsBy(rows, mkColProductID)
	require.Len(t, groups, 2)
	require.Len(t, groups["1"], 2)
	assert.Equal(t, "a", groups["1"][0].String(mkColVariantSKU))
	assert.Equal(t, "b", groups["1"][1].String(mkColVariantSKU))
}

func TestMergePrice(t *testing.T) {
	assert.Equal(t, 100.0, mergePrice(0, 100))
	assert.Equal(t, 100.0, mergePrice(100, 200))
	assert.Equal(t, 100.0, mergePrice(100, 0))
	assert.Equal(t, 0.0, mergePrice(0, 0))
	assert.Equal(t, 0.0, mergePrice(0, -50000))
	assert.Equal(t, 100.0, mergePrice(100, -50000))
}

func TestFamilyPriceIgnoresNegative(t *testing.T) {
	family := &Family{
		Key: "A",
		Rows: []spreadsheet.Row{
			{posColCode: "A", posColPrice: "-50,000"},
			{posColCode: "B", posColPrice: "150,000"},
		},
	}
	assert.Equal(t, 150000.0, familyPrice(family))

	negativeOnly := &Family{
		Key: "C",
		Rows: []spreadsheet.Row{
			{posColCode: "C", posColPrice: "-50,000"},
		},
	}
	assert.Equal(t, 0.0, familyPrice(negativeOnly))
}

func TestFamilyPriceAndStock(t *testing.T) {
	family := &Family{
		Key: "A",
		Rows: []spreadsheet.Row{
			{posColCode: "A", posColStock: "5"},
			{posColCode: "B", posColPrice: "200,000", posColStock: "3"},
			{posColCode: "C", posColPrice: "999999", posColStock: "-2"},
		},
	}

	assert.Equal(t, 200000.0, familyPrice(family))
	assert.Equal(t, 8, familyStock(family))
}
