package categories

import (
	"errors"
	"net/http"

	"anhthu_server/handling"
	"anhthu_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchCategoryTree handles GET /categories, returning root categories with
// all descendants nested.
func (crm *CategoryRoutesManager) FetchCategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := crm.catalogService.GetCategoryTree(r.Context())
	if err != nil {
		handling.HandleError(err, "error.categories.failedToFetch", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": tree,
		}),
		gecho.Send(),
	)
}

// FetchCategoryProducts handles GET /categories/{slug}/products, listing the
// products attached directly to the category with that slug.
func (crm *CategoryRoutesManager) FetchCategoryProducts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	result, err := crm.catalogService.GetProductsByCategorySlug(r.Context(), slug, opts)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("error.categories.notFound"),
				gecho.Send(),
			)
			return
		}

		handling.HandleError(err, "error.categories.failedToFetchProducts", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}
