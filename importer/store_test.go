package importer

import (
	"context"

	"anhthu_server/structs/tables"

	"github.com/google/uuid"
)

// memoryStore is an in-memory CatalogStore for pipeline tests.
type memoryStore struct {
	products   map[string]tables.Product // keyed by SKU
	categories []tables.Category
	images     map[uuid.UUID][]tables.ProductImage
	variants   map[uuid.UUID][]tables.ProductVariant
	options    map[uuid.UUID][]tables.ProductVariantOption
	sources    map[uuid.UUID]map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products: make(map[string]tables.Product),
		images:   make(map[uuid.UUID][]tables.ProductImage),
		variants: make(map[uuid.UUID][]tables.ProductVariant),
		options:  make(map[uuid.UUID][]tables.ProductVariantOption),
		sources:  make(map[uuid.UUID]map[string]string),
	}
}

func (ms *memoryStore) UpsertProducts(_ context.Context, products []tables.Product) ([]tables.Product, error) {
	out := make([]tables.Product, len(products))
	for i, p := range products {
		if existing, ok := ms.products[p.SKU]; ok {
			p.ID = existing.ID
		} else {
			p.ID = uuid.New()
		}
		ms.products[p.SKU] = p
		out[i] = p
	}
	return out, nil
}

func (ms *memoryStore) DeleteProductChildren(_ context.Context, productID uuid.UUID) error {
	for _, v := range ms.variants[productID] {
		delete(ms.options, v.ID)
	}
	delete(ms.variants, productID)
	delete(ms.images, productID)
	return nil
}

func (ms *memoryStore) InsertImages(_ context.Context, images []tables.ProductImage) error {
	for _, img := range images {
		img.ID = uuid.New()
		ms.images[img.ProductID] = append(ms.images[img.ProductID], img)
	}
	return nil
}

func (ms *memoryStore) InsertVariant(_ context.Context, variant *tables.ProductVariant) (*tables.ProductVariant, error) {
	v := *variant
	v.ID = uuid.New()
	ms.variants[v.ProductID] = append(ms.variants[v.ProductID], v)
	return &v, nil
}

func (ms *memoryStore) InsertVariantOptions(_ context.Context, options []tables.ProductVariantOption) error {
	for _, opt := range options {
		opt.ID = uuid.New()
		ms.options[opt.VariantID] = append(ms.options[opt.VariantID], opt)
	}
	return nil
}

func (ms *memoryStore) FindCategory(_ context.Context, slug string, parentID *uuid.UUID) (*tables.Category, error) {
	for i := range ms.categories {
		c := &ms.categories[i]
		if c.Slug != slug {
			continue
		}
		if (c.ParentID == nil) != (parentID == nil) {
			continue
		}
		if parentID == nil || *c.ParentID == *parentID {
			found := *c
			return &found, nil
		}
	}
	return nil, nil
}

func (ms *memoryStore) CreateCategory(_ context.Context, category *tables.Category) (*tables.Category, error) {
	c := *category
	c.ID = uuid.New()
	ms.categories = append(ms.categories, c)
	return &c, nil
}

func (ms *memoryStore) UpsertProductSource(_ context.Context, source *tables.ProductSource) error {
	if ms.sources[source.ProductID] == nil {
		ms.sources[source.ProductID] = make(map[string]string)
	}
	ms.sources[source.ProductID][source.SourceSystem] = source.SourceCode
	return nil
}

func (ms *memoryStore) productBySKU(sku string) (tables.Product, bool) {
	p, ok := ms.products[sku]
	return p, ok
}
