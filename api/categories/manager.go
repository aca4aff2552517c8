package categories

import (
	"anhthu_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CategoryRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
}

func NewCategoryRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
) *CategoryRoutesManager {
	return &CategoryRoutesManager{
		logger:         logger,
		catalogService: catalogService,
	}
}

func (crm *CategoryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/categories", crm.FetchCategoryTree)
	r.Get("/categories/{slug}/products", crm.FetchCategoryProducts)
}
