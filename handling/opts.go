package handling

import (
	"net/http"
	"strconv"
	"strings"

	"anhthu_server/services"

	"github.com/google/uuid"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*services.ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.ProductListOptions{}, nil
	}

	opts := &services.ProductListOptions{}
	var err error
	var val64 uint64
	var valInt int
	var valBool bool

	// Parse pagination parameters
	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if categoryID := query.Get("category_id"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, err
		}
		opts.CategoryID = &id
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	// Parse price filters
	if minPrice := query.Get("min_price"); minPrice != "" {
		if val64, err = strconv.ParseUint(minPrice, 10, 64); err != nil {
			return nil, err
		}
		opts.MinPriceVND = &val64
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		if val64, err = strconv.ParseUint(maxPrice, 10, 64); err != nil {
			return nil, err
		}
		opts.MaxPriceVND = &val64
	}

	if inStock := query.Get("in_stock"); inStock != "" {
		if valBool, err = strconv.ParseBool(inStock); err != nil {
			return nil, err
		}
		opts.InStockOnly = valBool
	}

	// Parse sorting parameters
	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	// Parse relation flags
	if includeImages := query.Get("include_images"); includeImages != "" {
		if valBool, err = strconv.ParseBool(includeImages); err != nil {
			return nil, err
		}
		opts.IncludeImages = valBool
	}

	if includeVariants := query.Get("include_variants"); includeVariants != "" {
		if valBool, err = strconv.ParseBool(includeVariants); err != nil {
			return nil, err
		}
		opts.IncludeVariants = valBool
	}

	return opts, nil
}
