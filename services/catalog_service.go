package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anhthu_server/database"
	"anhthu_server/lib"
	"anhthu_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CatalogService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCatalogService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CatalogService {
	return &CatalogService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductListOptions contains filtering and pagination options for product queries
type ProductListOptions struct {
	// Pagination
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Filters
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`  // Filter by category
	MinPriceVND *uint64    `json:"min_price,omitempty"`    // Minimum price in VND
	MaxPriceVND *uint64    `json:"max_price,omitempty"`    // Maximum price in VND
	SearchTerm  string     `json:"search_term,omitempty"`  // Search in name, description, SKU
	InStockOnly bool       `json:"in_stock_only,omitempty"`

	// Sorting
	SortBy        string `json:"sort_by"`        // created_at, price_vnd, name
	SortDirection string `json:"sort_direction"` // ASC or DESC

	// Relations
	IncludeImages   bool `json:"include_images"`
	IncludeVariants bool `json:"include_variants"`
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	QueryTime  time.Duration       `json:"query_time"`
}

var productSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"price":      "price_vnd",
	"price_vnd":  "price_vnd",
	"stock":      "stock",
}

// GetAllProducts retrieves products with filtering and pagination
func (cs *CatalogService) GetAllProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}

	query := database.Query[tables.Product](cs.db)

	if opts.CategoryID != nil {
		query = query.Where("category_id", *opts.CategoryID)
	}
	if opts.MinPriceVND != nil {
		query = query.WhereOp("price_vnd", ">=", *opts.MinPriceVND)
	}
	if opts.MaxPriceVND != nil {
		query = query.WhereOp("price_vnd", "<=", *opts.MaxPriceVND)
	}
	if opts.InStockOnly {
		query = query.WhereOp("stock", ">", 0)
	}
	if term := strings.TrimSpace(opts.SearchTerm); term != "" {
		pattern := "%" + term + "%"
		query = query.WhereRaw("(name ILIKE ? OR description ILIKE ? OR sku ILIKE ?)", pattern, pattern, pattern)
	}

	sortCol, ok := productSortColumns[opts.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := database.DESC
	if strings.EqualFold(opts.SortDirection, "ASC") {
		direction = database.ASC
	}
	query = query.OrderBy(sortCol, direction)

	if opts.IncludeImages {
		query = query.Relation("Images")
	}
	if opts.IncludeVariants {
		query = query.Relation("Variants").Relation("Variants.Options")
	}

	result, err := database.Paginate(query, ctx, opts.Page, opts.PageSize)
	if err != nil {
		cs.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	cs.logger.Debug("Products fetched",
		gecho.Field("count", len(result.Data)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("duration", time.Since(startTime)),
	)

	return &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
		QueryTime:  time.Since(startTime),
	}, nil
}

// GetProductByID retrieves a single product with its images, variants and
// options, served from cache when possible.
func (cs *CatalogService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	startTime := time.Now()

	cached, err := cs.cacheService.GetProductFromCache(id.String())
	if err != nil {
		cs.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cached != nil {
		cs.logger.Debug("Product retrieved from cache", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))
		return cached, nil
	}

	product, err := database.Query[tables.Product](cs.db).
		Where("id", id).
		Relation("Images").
		Relation("Variants").
		Relation("Variants.Options").
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch product by ID",
			gecho.Field("error", err),
			gecho.Field("id", id))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	if err := cs.cacheService.CacheProduct(product); err != nil {
		cs.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
	}

	return product, nil
}

// GetProductBySKU retrieves a single product by its source SKU
func (cs *CatalogService) GetProductBySKU(ctx context.Context, sku string) (*tables.Product, error) {
	product, err := database.Query[tables.Product](cs.db).
		Where("sku", sku).
		Relation("Images").
		Relation("Variants").
		Relation("Variants.Options").
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by sku: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// GetProductsByCategorySlug lists the products attached directly to the
// category with the given slug. Returns lib.ErrNotFound when no category
// carries that slug.
func (cs *CatalogService) GetProductsByCategorySlug(ctx context.Context, slug string, opts *ProductListOptions) (*ProductListResult, error) {
	category, err := database.Query[tables.Category](cs.db).
		Where("slug", slug).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category by slug: %w", err)
	}
	if category == nil {
		return nil, lib.ErrNotFound
	}

	if opts == nil {
		opts = &ProductListOptions{}
	}
	opts.CategoryID = &category.ID

	return cs.GetAllProducts(ctx, opts)
}

// GetCategoryTree returns root categories with children preloaded one level
// deep per query; deeper levels are assembled in memory from the flat list.
func (cs *CatalogService) GetCategoryTree(ctx context.Context) ([]tables.Category, error) {
	cached, err := cs.cacheService.GetCategoryTreeFromCache()
	if err != nil {
		cs.logger.Warn("Failed to get category tree from cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached, nil
	}

	flat, err := database.Query[tables.Category](cs.db).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	tree := buildCategoryTree(flat)

	if err := cs.cacheService.CacheCategoryTree(tree); err != nil {
		cs.logger.Warn("Failed to cache category tree", gecho.Field("error", err))
	}

	return tree, nil
}

// buildCategoryTree assembles the parent/child hierarchy from a flat list,
// returning the root nodes with all descendants attached.
func buildCategoryTree(flat []tables.Category) []tables.Category {
	byID := make(map[uuid.UUID]tables.Category, len(flat))
	childIDs := make(map[uuid.UUID][]uuid.UUID)

	for _, c := range flat {
		c.Children = nil
		byID[c.ID] = c
		if c.ParentID != nil {
			childIDs[*c.ParentID] = append(childIDs[*c.ParentID], c.ID)
		}
	}

	var build func(id uuid.UUID) tables.Category
	build = func(id uuid.UUID) tables.Category {
		node := byID[id]
		for _, childID := range childIDs[id] {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	var roots []tables.Category
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, build(c.ID))
		}
	}
	return roots
}

// ReparentPathCategories splits legacy flat categories whose name is a
// slash-delimited path ("A/B/C") into proper tree nodes and moves product
// references to the leaf. Returns how many categories were re-parented.
func (cs *CatalogService) ReparentPathCategories(ctx context.Context) (int, error) {
	flat, err := database.Query[tables.Category](cs.db).
		WhereLike("name", "%/%").
		All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list path categories: %w", err)
	}

	reparented := 0
	for _, legacy := range flat {
		leafID, err := cs.resolvePathChain(ctx, legacy.Name)
		if err != nil {
			cs.logger.Error("Failed to resolve category path",
				gecho.Field("category", legacy.Name),
				gecho.Field("error", err))
			continue
		}
		if leafID == legacy.ID {
			continue
		}

		moved, err := database.Query[tables.Product](cs.db).
			Select("id").
			Where("category_id", legacy.ID).
			All(ctx)
		if err != nil {
			cs.logger.Error("Failed to list products of legacy category",
				gecho.Field("category", legacy.Name),
				gecho.Field("error", err))
			continue
		}

		if _, err := database.Query[tables.Product](cs.db).
			Where("category_id", legacy.ID).
			Update(ctx, map[string]any{"category_id": leafID}); err != nil {
			cs.logger.Error("Failed to move products to leaf category",
				gecho.Field("category", legacy.Name),
				gecho.Field("error", err))
			continue
		}

		// Moved products carry a stale category in their cache entry.
		for _, product := range moved {
			if err := cs.cacheService.InvalidateProduct(product.ID.String()); err != nil {
				cs.logger.Warn("Failed to invalidate product cache",
					gecho.Field("id", product.ID),
					gecho.Field("error", err))
			}
		}

		if _, err := database.Query[tables.Category](cs.db).
			Where("id", legacy.ID).
			Delete(ctx); err != nil {
			cs.logger.Warn("Failed to delete legacy path category",
				gecho.Field("category", legacy.Name),
				gecho.Field("error", err))
		}

		reparented++
	}

	if reparented > 0 {
		if err := cs.cacheService.InvalidateCategoryTree(); err != nil {
			cs.logger.Warn("Failed to invalidate category tree cache", gecho.Field("error", err))
		}
	}

	return reparented, nil
}

// resolvePathChain creates or fetches each segment of a slash path as a tree
// node and returns the leaf id.
func (cs *CatalogService) resolvePathChain(ctx context.Context, path string) (uuid.UUID, error) {
	var parentID *uuid.UUID
	var leaf uuid.UUID

	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		slug := lib.Slugify(segment)

		q := database.Query[tables.Category](cs.db).Where("slug", slug)
		if parentID == nil {
			q = q.WhereNull("parent_id")
		} else {
			q = q.Where("parent_id", *parentID)
		}
		existing, err := q.First(ctx)
		if err != nil {
			return uuid.Nil, err
		}

		if existing == nil {
			existing, err = database.Create(cs.db, ctx, &tables.Category{
				Name:     segment,
				Slug:     slug,
				ParentID: parentID,
			})
			if err != nil {
				return uuid.Nil, err
			}
		}

		leaf = existing.ID
		id := existing.ID
		parentID = &id
	}

	if leaf == uuid.Nil {
		return uuid.Nil, fmt.Errorf("path %q has no usable segments", path)
	}
	return leaf, nil
}

// CleanupUnusedCategories deletes categories with no products and no child
// categories. Deleting a leaf can orphan its parent into the same state, so
// the pass loops until a sweep deletes nothing.
func (cs *CatalogService) CleanupUnusedCategories(ctx context.Context) (int, error) {
	totalDeleted := 0

	for {
		deleted, err := cs.sweepUnusedCategories(ctx)
		if err != nil {
			return totalDeleted, err
		}
		if deleted == 0 {
			break
		}
		totalDeleted += deleted
	}

	if totalDeleted > 0 {
		if err := cs.cacheService.InvalidateCategoryTree(); err != nil {
			cs.logger.Warn("Failed to invalidate category tree cache", gecho.Field("error", err))
		}
	}

	cs.logger.Info("Category cleanup finished", gecho.Field("deleted", totalDeleted))
	return totalDeleted, nil
}

func (cs *CatalogService) sweepUnusedCategories(ctx context.Context) (int, error) {
	deleted := 0

	err := database.Chunk(ctx, database.Query[tables.Category](cs.db), 100, func(categories []tables.Category, _ int) error {
		for _, category := range categories {
			hasProducts, err := database.Query[tables.Product](cs.db).
				Where("category_id", category.ID).
				Exists(ctx)
			if err != nil {
				return err
			}
			if hasProducts {
				continue
			}

			hasChildren, err := database.Query[tables.Category](cs.db).
				Where("parent_id", category.ID).
				Exists(ctx)
			if err != nil {
				return err
			}
			if hasChildren {
				continue
			}

			if _, err := database.DeleteByID[tables.Category](cs.db, ctx, category.ID); err != nil {
				cs.logger.Error("Failed to delete unused category",
					gecho.Field("category", category.Name),
					gecho.Field("error", err))
				continue
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return deleted, fmt.Errorf("failed to sweep categories: %w", err)
	}

	return deleted, nil
}
