package services

import (
	"anhthu_server/database"
	"anhthu_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	CatalogService *CatalogService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	catalogService := NewCatalogService(logger, db, cacheService)

	return &ServiceManager{
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		CatalogService: catalogService,
	}
}
