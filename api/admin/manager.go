package admin

import (
	"anhthu_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// AdminRoutesManager exposes the catalog maintenance passes run after bulk
// imports. There is no auth layer here; the API sits behind a private
// network boundary and the admin window carries its own rate limit.
type AdminRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		catalogService: catalogService,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/admin/categories/reparent", arm.ReparentCategories)
	r.Post("/admin/categories/cleanup", arm.CleanupCategories)
}
