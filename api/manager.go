package api

import (
	"anhthu_server/api/admin"
	"anhthu_server/api/categories"
	"anhthu_server/api/health"
	"anhthu_server/api/products"
	"anhthu_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	categoryRoutes *categories.CategoryRoutesManager
	healthRoutes   *health.HealthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager) *routerManager {
	return &routerManager{
		productRoutes:  products.NewProductRoutesManager(logger, sm.CatalogService),
		categoryRoutes: categories.NewCategoryRoutesManager(logger, sm.CatalogService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		adminRoutes:    admin.NewAdminRoutesManager(logger, sm.CatalogService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.categoryRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
