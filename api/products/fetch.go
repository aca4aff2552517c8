package products

import (
	"errors"
	"net/http"

	"anhthu_server/handling"
	"anhthu_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchAllProducts handles GET /products with filtering, pagination and sorting
func (p *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		p.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	result, err := p.catalogService.GetAllProducts(ctx, opts)
	if err != nil {
		handling.HandleError(err, "error.products.failedToFetch", p.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
			"meta": map[string]any{
				"query_time_ms": result.QueryTime.Milliseconds(),
				"count":         len(result.Products),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id} to fetch a single product
func (p *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := chi.URLParam(r, "id")

	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		p.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidProductId"),
			gecho.Send(),
		)
		return
	}

	product, err := p.catalogService.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		handling.HandleError(err, "error.products.failedToFetchOne", p.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// FetchProductBySKU handles GET /products/sku/{sku}, the lookup used by
// operators reconciling source spreadsheets against imported data.
func (p *ProductRoutesManager) FetchProductBySKU(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sku := chi.URLParam(r, "sku")
	if sku == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.skuRequired"),
			gecho.Send(),
		)
		return
	}

	product, err := p.catalogService.GetProductBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		handling.HandleError(err, "error.products.failedToFetchOne", p.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}
