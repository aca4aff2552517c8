package tables

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the self-referential category tree. Uniqueness is
// (slug, parent_id): the same slug may appear under different parents.
type Category struct {
	tableName struct{}   `bun:"table:categories,alias:c"`
	ID        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	Slug      string     `bun:"slug,notnull" json:"slug"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`

	Children []Category `bun:"rel:has-many,join:id=parent_id" json:"children,omitempty"`
}

type Product struct {
	tableName    struct{}   `bun:"table:products,alias:p"`
	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	SKU          string     `bun:"sku,notnull,unique" json:"sku"` // natural key; imports upsert on it
	Name         string     `bun:"name,notnull" json:"name"`
	Description  string     `bun:"description" json:"description"`
	PriceVND     uint64     `bun:"price_vnd,notnull" json:"price_vnd"`
	PriceUSD     float64    `bun:"price_usd,notnull" json:"price_usd"` // fixed-rate conversion at import time
	CategoryID   *uuid.UUID `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	MainImageURL string     `bun:"main_image_url" json:"main_image_url,omitempty"`
	Stock        int        `bun:"stock,notnull" json:"stock"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Images   []ProductImage   `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
	Variants []ProductVariant `bun:"rel:has-many,join:id=product_id" json:"variants,omitempty"`
}

// ProductImage belongs to exactly one product; DisplayOrder is contiguous
// from 0 within that product.
type ProductImage struct {
	tableName    struct{}  `bun:"table:product_images,alias:pi"`
	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID    uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	ImageURL     string    `bun:"image_url,notnull" json:"image_url"`
	DisplayOrder int       `bun:"display_order,notnull" json:"display_order"`
}

// ProductVariant is one axis of variation, e.g. "Color" or "Size". Names are
// free text; the import pipeline normalizes common Vietnamese terms but does
// not enforce an enum.
type ProductVariant struct {
	tableName struct{}  `bun:"table:product_variants,alias:pv"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	Name      string    `bun:"name,notnull" json:"name"`

	Options []ProductVariantOption `bun:"rel:has-many,join:id=variant_id" json:"options,omitempty"`
}

type ProductVariantOption struct {
	tableName struct{}  `bun:"table:product_variant_options,alias:pvo"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	VariantID uuid.UUID `bun:"variant_id,type:uuid,notnull" json:"variant_id"`
	Value     string    `bun:"value,notnull" json:"value"` // raw option text, possibly untranslated
	ImageURL  *string   `bun:"image_url" json:"image_url,omitempty"`
	Stock     int       `bun:"stock,notnull" json:"stock"`
}

// ProductSource maps an internal product id back to the code it carried in a
// source system, so partial imports can be reconciled without a side-file.
type ProductSource struct {
	tableName    struct{}  `bun:"table:product_sources,alias:ps"`
	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID    uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	SourceSystem string    `bun:"source_system,notnull" json:"source_system"` // "pos" or "marketplace"
	SourceCode   string    `bun:"source_code,notnull" json:"source_code"`    // SKU, group code or numeric id
	ImportedAt   time.Time `bun:"imported_at,notnull,default:now()" json:"imported_at"`
}
