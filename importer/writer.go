package importer

import (
	"context"
	"errors"
	"fmt"

	"anhthu_server/database"
	"anhthu_server/lib"
	"anhthu_server/structs/tables"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DatabaseStore is the bun-backed CatalogStore used by the import command.
type DatabaseStore struct {
	db        *database.DB
	batchSize int
}

func NewDatabaseStore(db *database.DB, batchSize int) *DatabaseStore {
	if batchSize < 1 {
		batchSize = 50
	}
	return &DatabaseStore{db: db, batchSize: batchSize}
}

// UpsertProducts writes products in batches, upserting on SKU so re-imports
// update in place instead of duplicating. Returned products carry their
// database ids.
func (ds *DatabaseStore) UpsertProducts(ctx context.Context, products []tables.Product) ([]tables.Product, error) {
	out := make([]tables.Product, 0, len(products))

	for start := 0; start < len(products); start += ds.batchSize {
		end := min(start+ds.batchSize, len(products))
		batch := products[start:end]

		saved, err := database.BulkUpsert(ds.db, ctx, batch, "sku",
			"name", "description", "price_vnd", "price_usd",
			"category_id", "main_image_url", "stock", "updated_at")
		if err != nil {
			return nil, fmt.Errorf("failed to upsert product batch at %d: %w", start, err)
		}
		out = append(out, saved...)
	}

	return out, nil
}

// DeleteProductChildren removes a product's options, variants and images in
// one transaction, so a failed re-import never leaves a half-replaced child
// set behind.
func (ds *DatabaseStore) DeleteProductChildren(ctx context.Context, productID uuid.UUID) error {
	return database.Transaction(ds.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.ProductVariantOption)(nil)).
			Where("variant_id IN (SELECT id FROM product_variants WHERE product_id = ?)", productID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete variant options for %s: %w", productID, err)
		}

		if _, err := tx.NewDelete().
			Model((*tables.ProductVariant)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete variants for %s: %w", productID, err)
		}

		if _, err := tx.NewDelete().
			Model((*tables.ProductImage)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete images for %s: %w", productID, err)
		}

		return nil
	})
}

func (ds *DatabaseStore) InsertImages(ctx context.Context, images []tables.ProductImage) error {
	_, err := database.CreateMany(ds.db, ctx, images)
	return err
}

func (ds *DatabaseStore) InsertVariant(ctx context.Context, variant *tables.ProductVariant) (*tables.ProductVariant, error) {
	return database.Create(ds.db, ctx, variant)
}

func (ds *DatabaseStore) InsertVariantOptions(ctx context.Context, options []tables.ProductVariantOption) error {
	_, err := database.CreateMany(ds.db, ctx, options)
	return err
}

func (ds *DatabaseStore) FindCategory(ctx context.Context, slug string, parentID *uuid.UUID) (*tables.Category, error) {
	q := database.Query[tables.Category](ds.db).Where("slug", slug)
	if parentID == nil {
		q = q.WhereNull("parent_id")
	} else {
		q = q.Where("parent_id", *parentID)
	}
	return q.First(ctx)
}

func (ds *DatabaseStore) CreateCategory(ctx context.Context, category *tables.Category) (*tables.Category, error) {
	created, err := database.Create(ds.db, ctx, category)
	if err != nil {
		// Another run may have created the same (slug, parent_id) node in
		// the meantime; fetch it instead of failing the row.
		if errors.Is(lib.MapPgError(err), lib.ErrConflict) {
			return ds.FindCategory(ctx, category.Slug, category.ParentID)
		}
		return nil, err
	}
	return created, nil
}

func (ds *DatabaseStore) UpsertProductSource(ctx context.Context, source *tables.ProductSource) error {
	_, err := database.BulkUpsert(ds.db, ctx, []tables.ProductSource{*source},
		"product_id, source_system", "source_code", "imported_at")
	return err
}
