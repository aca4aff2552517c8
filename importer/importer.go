package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"anhthu_server/lib"
	"anhthu_server/spreadsheet"
	"anhthu_server/structs"
	"anhthu_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	SourcePOS         = "pos"
	SourceMarketplace = "marketplace"
)

// translateFanout bounds how many translation calls run concurrently per
// product. The endpoint is unauthenticated; more than a handful trips its
// rate limit.
const translateFanout = 3

// Report is what one import run produced, shown to the operator and mailed
// as the run summary.
type Report struct {
	ProductsImported    int           `json:"products_imported"`
	CategoriesCreated   int           `json:"categories_created"`
	TranslationFailures int           `json:"translation_failures"`
	ImagesMatched       int           `json:"images_matched"`
	ImagesNoMatch       int           `json:"images_no_match"`
	ImagesAmbiguous     int           `json:"images_ambiguous"`
	RowErrors           int           `json:"row_errors"`
	SkippedFiles        []string      `json:"skipped_files,omitempty"`
	Duration            time.Duration `json:"duration"`
}

// NeedsReview reports whether the run left data an operator should look at:
// failed rows or option images that could not be matched unambiguously.
func (r *Report) NeedsReview() bool {
	return r.RowErrors > 0 || r.ImagesAmbiguous > 0
}

// Importer runs the reconciliation pipeline: point-of-sale rows grouped into
// product families, enriched from the marketplace exports, written through
// the store. All state lives on the struct so runs are isolated; nothing is
// process-global.
type Importer struct {
	cfg        *structs.ImportConfig
	store      CatalogStore
	translator Translator
	logger     *gecho.Logger
	categories *CategoryNormalizer
	report     Report

	// marketplace lookups, built once per run
	basicByID   map[string]spreadsheet.Row
	mediaByID   map[string]spreadsheet.Row
	salesByID   map[string][]spreadsheet.Row
	idByPOSCode map[string]string
}

func New(cfg *structs.ImportConfig, store CatalogStore, translator Translator, logger *gecho.Logger) *Importer {
	return &Importer{
		cfg:        cfg,
		store:      store,
		translator: translator,
		logger:     logger,
		categories: NewCategoryNormalizer(store, translator, logger, cfg.RootCategory, cfg.FallbackLabel),
	}
}

// Run executes the full pipeline. A missing point-of-sale file is fatal;
// missing marketplace files are skipped with a note in the report. Per-row
// failures are logged, counted and do not stop the run.
func (im *Importer) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	posRows, err := spreadsheet.Read(im.cfg.POSFile, im.cfg.POSOffset)
	if err != nil {
		return nil, fmt.Errorf("point-of-sale export is required: %w", err)
	}

	im.loadMarketplace()

	families := GroupFamilies(posRows)
	im.logger.Info("Starting import",
		gecho.Field("pos_rows", len(posRows)),
		gecho.Field("families", len(families)),
	)

	batch := make([]pendingProduct, 0, len(families))
	for _, family := range families {
		pending, err := im.buildProduct(ctx, family)
		if err != nil {
			im.report.RowErrors++
			im.logger.Error("Failed to build product",
				gecho.Field("sku", family.Key),
				gecho.Field("error", err),
			)
			continue
		}
		batch = append(batch, *pending)
	}

	im.persist(ctx, batch)

	im.report.CategoriesCreated = im.categories.Created()
	im.report.Duration = time.Since(start)

	if err := im.writeSKUMap(batch); err != nil {
		im.logger.Warn("Failed to write SKU map file", gecho.Field("error", err))
	}

	im.logger.Info("Import finished",
		gecho.Field("products", im.report.ProductsImported),
		gecho.Field("categories_created", im.report.CategoriesCreated),
		gecho.Field("row_errors", im.report.RowErrors),
		gecho.Field("duration", im.report.Duration),
	)

	return &im.report, nil
}

// loadMarketplace reads the optional marketplace exports and builds the join
// indexes. Each missing file is skipped and recorded, never fatal.
func (im *Importer) loadMarketplace() {
	read := func(path string, offset int) []spreadsheet.Row {
		if path == "" {
			return nil
		}
		rows, err := spreadsheet.Read(path, offset)
		if err != nil {
			if errors.Is(err, lib.ErrMissingFile) {
				im.report.SkippedFiles = append(im.report.SkippedFiles, path)
				im.logger.Warn("Marketplace file missing, skipping", gecho.Field("path", path))
				return nil
			}
			im.report.RowErrors++
			im.logger.Error("Failed to read marketplace file",
				gecho.Field("path", path),
				gecho.Field("error", err),
			)
			return nil
		}
		return rows
	}

	basic := read(im.cfg.BasicFile, im.cfg.BasicOffset)
	media := read(im.cfg.MediaFile, im.cfg.MediaOffset)
	sales := read(im.cfg.SalesFile, im.cfg.SalesOffset)

	im.basicByID = IndexBy(basic, mkColProductID)
	im.mediaByID = IndexBy(media, mkColProductID)
	im.salesByID = GroupRowsBy(sales, mkColProductID)

	// The marketplace parent SKU is the point-of-sale group code, which is
	// the only key shared across the two source systems.
	im.idByPOSCode = make(map[string]string, len(basic))
	for _, row := range basic {
		sku := row.String(mkColParentSKU)
		id := row.String(mkColProductID)
		if sku == "" || id == "" {
			continue
		}
		if _, seen := im.idByPOSCode[sku]; !seen {
			im.idByPOSCode[sku] = id
		}
	}
}

// pendingProduct is one family's assembled state, held until the batched
// product upsert hands back database ids.
type pendingProduct struct {
	product      tables.Product
	imageURLs    []string
	variants     []pendingVariant
	sourceCodes  map[string]string // source system -> code
	optionImages map[string][]string
}

type pendingVariant struct {
	dimension Dimension
	values    []string
	stock     map[string]int
}

// buildProduct assembles one family into a product row plus its children.
// Name and description are translated concurrently; category resolution and
// marketplace enrichment happen inline.
func (im *Importer) buildProduct(ctx context.Context, family *Family) (*pendingProduct, error) {
	main := family.Main()

	name := main.String(posColName)
	if name == "" {
		name = family.Key
	}
	description := main.String(posColDescription)

	mkID := im.idByPOSCode[family.Key]
	if description == "" && mkID != "" {
		if basic, ok := im.basicByID[mkID]; ok {
			description = basic.String(mkColDescription)
		}
	}

	translated := im.translateBatch(ctx, name, description)
	name, description = translated[0], translated[1]

	categoryID, err := im.categories.Resolve(ctx, main.String(posColCategory))
	if err != nil {
		return nil, err
	}

	priceVND := familyPrice(family)
	if priceVND == 0 && mkID != "" {
		for _, sale := range im.salesByID[mkID] {
			priceVND = mergePrice(priceVND, sale.Float(mkColPrice))
		}
	}

	pending := pendingProduct{
		product: tables.Product{
			SKU:         family.Key,
			Name:        name,
			Description: description,
			PriceVND:    uint64(priceVND),
			PriceUSD:    RoundUSD(priceVND, im.cfg.ExchangeRate),
			CategoryID:  categoryID,
			Stock:       familyStock(family),
			UpdatedAt:   time.Now(),
		},
		sourceCodes: map[string]string{SourcePOS: family.Key},
	}

	pending.imageURLs = im.collectImages(main, mkID)
	if len(pending.imageURLs) > 0 {
		pending.product.MainImageURL = pending.imageURLs[0]
	}

	if mkID != "" {
		pending.sourceCodes[SourceMarketplace] = mkID
		if media, ok := im.mediaByID[mkID]; ok {
			pending.optionImages = BuildOptionImageIndex(media)
		}
	}

	pending.variants = im.collectVariants(family)

	return &pending, nil
}

// collectImages merges the point-of-sale image cell (comma-separated URLs)
// with the marketplace media columns, deduplicated in order.
func (im *Importer) collectImages(main spreadsheet.Row, mkID string) []string {
	var urls []string
	for _, url := range strings.Split(main.String(posColImage), ",") {
		if url = strings.TrimSpace(url); url != "" && !containsURL(urls, url) {
			urls = append(urls, url)
		}
	}

	if mkID != "" {
		if media, ok := im.mediaByID[mkID]; ok {
			for slot := 1; slot <= mkImageSlots; slot++ {
				if url := media.String(mkImageCol(slot)); url != "" && !containsURL(urls, url) {
					urls = append(urls, url)
				}
			}
		}
	}

	return urls
}

// collectVariants folds every family row's attribute cell into per-dimension
// option sets, summing stock per option value. Raw dimension spellings are
// canonicalized here, so "Màu" and "Màu sắc" rows land in the same set.
func (im *Importer) collectVariants(family *Family) []pendingVariant {
	var order []string
	sets := make(map[string]*OptionSet)
	stock := make(map[string]map[string]int)

	for _, row := range family.Rows {
		rowStock := row.Int(posColStock)
		for _, attr := range ParseAttributePairs(row.String(posColAttributes)) {
			dim := NormalizeDimension(attr.Name)
			set, ok := sets[dim.Canonical]
			if !ok {
				set = NewOptionSet(dim)
				sets[dim.Canonical] = set
				stock[dim.Canonical] = make(map[string]int)
				order = append(order, dim.Canonical)
			}
			set.Add(attr.Value)
			if rowStock > 0 {
				stock[dim.Canonical][strings.ToLower(attr.Value)] += rowStock
			}
		}
	}

	variants := make([]pendingVariant, 0, len(order))
	for _, name := range order {
		variants = append(variants, pendingVariant{
			dimension: sets[name].Dimension,
			values:    sets[name].Values(),
			stock:     stock[name],
		})
	}
	return variants
}

// persist upserts the product batch, then writes each product's children.
// Child writes replace wholesale: images and variants are deleted and
// reinserted so a re-import never merges stale rows.
func (im *Importer) persist(ctx context.Context, batch []pendingProduct) {
	if len(batch) == 0 {
		return
	}

	products := make([]tables.Product, len(batch))
	for i, pending := range batch {
		products[i] = pending.product
	}

	saved, err := im.store.UpsertProducts(ctx, products)
	if err != nil {
		im.report.RowErrors += len(batch)
		im.logger.Error("Product batch upsert failed", gecho.Field("error", err))
		return
	}

	for i := range saved {
		batch[i].product = saved[i]
		if err := im.persistChildren(ctx, &batch[i]); err != nil {
			im.report.RowErrors++
			im.logger.Error("Failed to write product children",
				gecho.Field("sku", batch[i].product.SKU),
				gecho.Field("error", err),
			)
			continue
		}
		im.report.ProductsImported++
	}
}

func (im *Importer) persistChildren(ctx context.Context, pending *pendingProduct) error {
	productID := pending.product.ID

	if err := im.store.DeleteProductChildren(ctx, productID); err != nil {
		return err
	}

	if len(pending.imageURLs) > 0 {
		images := make([]tables.ProductImage, len(pending.imageURLs))
		for i, url := range pending.imageURLs {
			images[i] = tables.ProductImage{ProductID: productID, ImageURL: url, DisplayOrder: i}
		}
		if err := im.store.InsertImages(ctx, images); err != nil {
			return err
		}
	}

	for _, pv := range pending.variants {
		variant, err := im.store.InsertVariant(ctx, &tables.ProductVariant{
			ProductID: productID,
			Name:      pv.dimension.Canonical,
		})
		if err != nil {
			return err
		}

		options := make([]tables.ProductVariantOption, 0, len(pv.values))
		for _, value := range pv.values {
			option := tables.ProductVariantOption{
				VariantID: variant.ID,
				Value:     value,
				Stock:     pv.stock[strings.ToLower(value)],
			}
			switch match := MatchOptionImage(pending.optionImages, value); match.Status {
			case ImageMatched:
				url := match.URL
				option.ImageURL = &url
				im.report.ImagesMatched++
			case ImageAmbiguous:
				im.report.ImagesAmbiguous++
			default:
				im.report.ImagesNoMatch++
			}
			options = append(options, option)
		}
		if err := im.store.InsertVariantOptions(ctx, options); err != nil {
			return err
		}
	}

	for system, code := range pending.sourceCodes {
		source := tables.ProductSource{
			ProductID:    productID,
			SourceSystem: system,
			SourceCode:   code,
			ImportedAt:   time.Now(),
		}
		if err := im.store.UpsertProductSource(ctx, &source); err != nil {
			return err
		}
	}

	return nil
}

// translateBatch translates up to translateFanout texts concurrently.
// Failures keep the original text and bump the failure counter; the pipeline
// never blocks on translation.
func (im *Importer) translateBatch(ctx context.Context, texts ...string) []string {
	out := make([]string, len(texts))
	sem := make(chan struct{}, translateFanout)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, text := range texts {
		out[i] = text
		if strings.TrimSpace(text) == "" {
			continue
		}

		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			translated, err := im.translator.Translate(ctx, text)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				im.report.TranslationFailures++
				im.logger.Warn("Translation failed, keeping original",
					gecho.Field("text", text),
					gecho.Field("error", err),
				)
				return
			}
			out[i] = translated
		}(i, text)
	}

	wg.Wait()
	return out
}

// writeSKUMap dumps SKU -> product id for every imported product. The
// product_sources table is authoritative; the file is a convenience for
// operators eyeballing a run.
func (im *Importer) writeSKUMap(batch []pendingProduct) error {
	if im.cfg.SKUMapFile == "" {
		return nil
	}

	skuMap := make(map[string]string, len(batch))
	for _, pending := range batch {
		skuMap[pending.product.SKU] = pending.product.ID.String()
	}

	data, err := json.MarshalIndent(skuMap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(im.cfg.SKUMapFile, data, 0o644)
}

// RoundUSD converts a VND price to USD at the fixed import-time rate,
// rounded to cents.
func RoundUSD(vnd float64, rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return math.Round(vnd/rate*100) / 100
}
