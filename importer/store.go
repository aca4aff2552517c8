package importer

import (
	"context"

	"anhthu_server/structs/tables"

	"github.com/google/uuid"
)

// CatalogStore is the persistence surface the pipeline writes through. The
// production implementation sits on the database package; tests swap in an
// in-memory fake.
type CatalogStore interface {
	// UpsertProducts inserts or updates products keyed on SKU and returns
	// them with ids populated.
	UpsertProducts(ctx context.Context, products []tables.Product) ([]tables.Product, error)

	// DeleteProductChildren removes a product's images, variants and variant
	// options so a re-import replaces them wholesale instead of merging.
	DeleteProductChildren(ctx context.Context, productID uuid.UUID) error

	InsertImages(ctx context.Context, images []tables.ProductImage) error
	InsertVariant(ctx context.Context, variant *tables.ProductVariant) (*tables.ProductVariant, error)
	InsertVariantOptions(ctx context.Context, options []tables.ProductVariantOption) error

	// FindCategory looks a category up by (slug, parent_id); nil parentID
	// means a root node. Returns nil without error when absent.
	FindCategory(ctx context.Context, slug string, parentID *uuid.UUID) (*tables.Category, error)
	CreateCategory(ctx context.Context, category *tables.Category) (*tables.Category, error)

	// UpsertProductSource records which source-system code a product came
	// from, keyed on (product_id, source_system).
	UpsertProductSource(ctx context.Context, source *tables.ProductSource) error
}
