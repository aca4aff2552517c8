package config

import (
	"anhthu_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "AnhThu_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8082"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowOrigins:     getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowMethods:     getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowHeaders:     getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Authorization"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "anhthu_db"),
				Insecure:     getEnvAsBool("DB_INSECURE", true),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 30*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 100*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 2*time.Second),
				ProductTTL:      getEnvAsTimeDuration("CACHE_PRODUCT_TTL", 10*time.Minute),
				CategoryTTL:     getEnvAsTimeDuration("CACHE_CATEGORY_TTL", 30*time.Minute),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:         getEnvAsBool("RATE_LIMIT_ENABLED", true),
				GeneralLimit:    getEnvAsInt("RATE_LIMIT_GENERAL", 120),
				GeneralWindow:   getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
				AdminLimit:      getEnvAsInt("RATE_LIMIT_ADMIN", 30),
				AdminWindow:     getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
				ExpensiveLimit:  getEnvAsInt("RATE_LIMIT_EXPENSIVE", 60),
				ExpensiveWindow: getEnvAsTimeDuration("RATE_LIMIT_EXPENSIVE_WINDOW", time.Minute),
			},
			Email: &structs.EmailConfig{
				ApiKey:        getEnvAsString("RESEND_API_KEY", ""),
				From:          getEnvAsString("EMAIL_FROM", "imports@anhthu.shop"),
				OperatorEmail: getEnvAsString("IMPORT_OPERATOR_EMAIL", ""),
			},
			Import: &structs.ImportConfig{
				POSFile:       getEnvAsString("IMPORT_POS_FILE", "DanhSachSanPham.xlsx"),
				BasicFile:     getEnvAsString("IMPORT_BASIC_FILE", "mass_update_basic_info.xlsx"),
				MediaFile:     getEnvAsString("IMPORT_MEDIA_FILE", "mass_update_media.xlsx"),
				SalesFile:     getEnvAsString("IMPORT_SALES_FILE", "mass_update_sales_info.xlsx"),
				POSOffset:     getEnvAsInt("IMPORT_POS_OFFSET", 2),
				BasicOffset:   getEnvAsInt("IMPORT_BASIC_OFFSET", 0),
				MediaOffset:   getEnvAsInt("IMPORT_MEDIA_OFFSET", 3),
				SalesOffset:   getEnvAsInt("IMPORT_SALES_OFFSET", 0),
				ExchangeRate:  getEnvAsFloat("IMPORT_EXCHANGE_RATE", 25400),
				RootCategory:  getEnvAsString("IMPORT_ROOT_CATEGORY", "Women Clothes"),
				FallbackLabel: getEnvAsString("IMPORT_FALLBACK_CATEGORY", "Uncategorized"),
				BatchSize:     getEnvAsInt("IMPORT_BATCH_SIZE", 50),
				Translate:     getEnvAsBool("IMPORT_TRANSLATE", true),
				SKUMapFile:    getEnvAsString("IMPORT_SKU_MAP_FILE", "product_sku_map.json"),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
