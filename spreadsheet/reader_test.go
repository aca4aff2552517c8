package spreadsheet

import (
	"errors"
	"path/filepath"
	"testing"

	"anhthu_server/lib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeSheet builds a real .xlsx file from a grid of cells.
func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lib.ErrMissingFile))
}

func TestReadKeysRowsByHeader(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Mã hàng", "Tên hàng", "Giá bán"},
		{"SKU1", "Áo thun", "254,000"},
		{"SKU2", "Quần jean", 150000},
	})

	rows, err := Read(path, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SKU1", rows[0].String("Mã hàng"))
	assert.Equal(t, "Áo thun", rows[0].String("Tên hàng"))
	assert.Equal(t, float64(254000), rows[0].Float("Giá bán"))
	assert.Equal(t, 150000, rows[1].Int("Giá bán"))
}

func TestReadHeaderOffset(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Report generated 2024-01-01"},
		{},
		{"Mã hàng", "Tên hàng"},
		{"SKU1", "Áo thun"},
	})

	rows, err := Read(path, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU1", rows[0].String("Mã hàng"))
}

func TestReadSkipsEmbeddedHeaderRows(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Mã hàng", "Tên hàng"},
		{"SKU1", "Áo thun"},
		{"Mã hàng", "Tên hàng"},
		{"SKU2", "Quần jean"},
	})

	rows, err := Read(path, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SKU1", rows[0].String("Mã hàng"))
	assert.Equal(t, "SKU2", rows[1].String("Mã hàng"))
}

func TestReadSparseCellsStayAbsent(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Mã hàng", "Tên hàng", "Giá bán"},
		{"SKU1", "", "100"},
	})

	rows, err := Read(path, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.False(t, rows[0].Has("Tên hàng"))
	assert.True(t, rows[0].Has("Giá bán"))
}

func TestRowCoercion(t *testing.T) {
	row := Row{"price": "  12,500 ", "count": "3.9", "bad": "abc"}

	assert.Equal(t, 12500.0, row.Float("price"))
	assert.Equal(t, 3, row.Int("count"))
	assert.Equal(t, 0.0, row.Float("bad"))
	assert.Equal(t, 0.0, row.Float("missing"))
}
