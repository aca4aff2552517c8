package importer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"anhthu_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeExport(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func testImportConfig(dir string) *structs.ImportConfig {
	return &structs.ImportConfig{
		ExchangeRate:  25400,
		RootCategory:  "Women Clothes",
		FallbackLabel: "Uncategorized",
		BatchSize:     50,
		SKUMapFile:    filepath.Join(dir, "product_sku_map.json"),
	}
}

func TestRoundUSD(t *testing.T) {
	assert.Equal(t, 10.00, RoundUSD(254000, 25400))
	assert.Equal(t, 7.87, RoundUSD(200000, 25400))
	assert.Equal(t, 0.0, RoundUSD(100, 0))
}

func TestRunGroupsFamilyIntoOneProduct(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColRelatedCode, posColName, posColCategory, posColAttributes, posColPrice, posColStock, posColImage},
		{"SKU1", "", "Áo thun", "2 - Women Clothes/Áo nữ", "Màu sắc:Đen", "200,000", 5, "https://cdn.example.com/main.jpg"},
		{"SKU2", "SKU1", "", "", "Màu sắc:Trắng", "", 3, ""},
	})

	store := newMemoryStore()
	im := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger())

	report, err := im.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ProductsImported)
	assert.Equal(t, 1, report.CategoriesCreated)
	assert.Equal(t, 0, report.RowErrors)

	product, ok := store.productBySKU("SKU1")
	require.True(t, ok)
	assert.Equal(t, "Áo thun", product.Name)
	assert.Equal(t, uint64(200000), product.PriceVND)
	assert.Equal(t, 7.87, product.PriceUSD)
	assert.Equal(t, 8, product.Stock)
	assert.Equal(t, "https://cdn.example.com/main.jpg", product.MainImageURL)
	require.NotNil(t, product.CategoryID)

	variants := store.variants[product.ID]
	require.Len(t, variants, 1)
	assert.Equal(t, DimensionColor, variants[0].Name)

	options := store.options[variants[0].ID]
	require.Len(t, options, 2)
	assert.Equal(t, "Đen", options[0].Value)
	assert.Equal(t, 5, options[0].Stock)
	assert.Equal(t, "Trắng", options[1].Value)
	assert.Equal(t, 3, options[1].Stock)

	assert.Equal(t, "SKU1", store.sources[product.ID][SourcePOS])
}

func TestRunNegativePriceCoercesToZero(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColName, posColPrice, posColStock},
		{"SKU1", "Áo thun", "-50,000", 2},
	})

	store := newMemoryStore()
	_, err := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger()).Run(context.Background())
	require.NoError(t, err)

	// Return and adjustment rows carry negative prices; they must coerce to
	// the zero default instead of wrapping into a garbage unsigned price.
	product, ok := store.productBySKU("SKU1")
	require.True(t, ok)
	assert.Equal(t, uint64(0), product.PriceVND)
	assert.Equal(t, 0.0, product.PriceUSD)
}

func TestRunMergesDimensionSpellings(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColRelatedCode, posColName, posColAttributes, posColPrice, posColStock},
		{"SKU1", "", "Áo thun", "Màu:Đen", "100,000", 1},
		{"SKU2", "SKU1", "", "Màu sắc:Trắng", "", 1},
	})

	store := newMemoryStore()
	_, err := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger()).Run(context.Background())
	require.NoError(t, err)

	product, ok := store.productBySKU("SKU1")
	require.True(t, ok)

	// Two raw spellings of the color axis collapse into one variant.
	variants := store.variants[product.ID]
	require.Len(t, variants, 1)
	assert.Equal(t, DimensionColor, variants[0].Name)
	require.Len(t, store.options[variants[0].ID], 2)
}

func TestRunMarketplaceEnrichment(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColName, posColCategory, posColAttributes, posColPrice, posColStock},
		{"SKU1", "Đầm dạ hội", "Đầm nữ", "Màu:Đỏ", "", 2},
	})
	cfg.BasicFile = writeExport(t, dir, "basic.xlsx", [][]any{
		{mkColProductID, mkColParentSKU, mkColProductName, mkColDescription},
		{"77", "SKU1", "Evening dress", "Silk evening dress"},
	})
	cfg.MediaFile = writeExport(t, dir, "media.xlsx", [][]any{
		{mkColProductID, mkImageCol(1), mkImageCol(2), mkOptionCol(1, 1), mkOptionImageCol(1, 1)},
		{"77", "https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg", "đỏ", "https://cdn.example.com/do.jpg"},
	})
	cfg.SalesFile = writeExport(t, dir, "sales.xlsx", [][]any{
		{mkColProductID, mkColPrice, mkColStock},
		{"77", "450,000", 2},
	})

	store := newMemoryStore()
	im := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger())

	report, err := im.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.SkippedFiles)

	product, ok := store.productBySKU("SKU1")
	require.True(t, ok)

	// Description comes from the marketplace because the POS row has none;
	// the price falls back to the sales export.
	assert.Equal(t, "Silk evening dress", product.Description)
	assert.Equal(t, uint64(450000), product.PriceVND)

	images := store.images[product.ID]
	require.Len(t, images, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].ImageURL)
	assert.Equal(t, 0, images[0].DisplayOrder)
	assert.Equal(t, 1, images[1].DisplayOrder)

	variants := store.variants[product.ID]
	require.Len(t, variants, 1)
	options := store.options[variants[0].ID]
	require.Len(t, options, 1)
	require.NotNil(t, options[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/do.jpg", *options[0].ImageURL)
	assert.Equal(t, 1, report.ImagesMatched)

	assert.Equal(t, "77", store.sources[product.ID][SourceMarketplace])
}

func TestRunSkipsMissingMarketplaceFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColName, posColPrice},
		{"SKU1", "Áo thun", "100,000"},
	})
	cfg.BasicFile = filepath.Join(dir, "missing-basic.xlsx")

	store := newMemoryStore()
	im := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger())

	report, err := im.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ProductsImported)
	assert.Equal(t, []string{cfg.BasicFile}, report.SkippedFiles)
}

func TestRunMissingPOSFileIsFatal(t *testing.T) {
	cfg := testImportConfig(t.TempDir())
	cfg.POSFile = filepath.Join(t.TempDir(), "missing.xlsx")

	im := New(cfg, newMemoryStore(), noopTranslator{}, gecho.NewDefaultLogger())

	_, err := im.Run(context.Background())
	require.Error(t, err)
}

func TestRunIsIdempotentBySKU(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColName, posColAttributes, posColPrice, posColStock},
		{"SKU1", "Áo thun", "Màu:Đen", "100,000", 5},
	})

	store := newMemoryStore()

	_, err := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger()).Run(context.Background())
	require.NoError(t, err)
	first, ok := store.productBySKU("SKU1")
	require.True(t, ok)

	_, err = New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger()).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.products, 1)
	second, _ := store.productBySKU("SKU1")
	assert.Equal(t, first.ID, second.ID)

	// Children are replaced, not duplicated.
	variants := store.variants[second.ID]
	require.Len(t, variants, 1)
	assert.Len(t, store.options[variants[0].ID], 1)
}

func TestRunWritesSKUMapFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testImportConfig(dir)
	cfg.POSFile = writeExport(t, dir, "pos.xlsx", [][]any{
		{posColCode, posColName},
		{"SKU1", "Áo thun"},
	})

	store := newMemoryStore()
	_, err := New(cfg, store, noopTranslator{}, gecho.NewDefaultLogger()).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.SKUMapFile)
	require.NoError(t, err)

	var skuMap map[string]string
	require.NoError(t, json.Unmarshal(data, &skuMap))

	product, _ := store.productBySKU("SKU1")
	assert.Equal(t, product.ID.String(), skuMap["SKU1"])
}
