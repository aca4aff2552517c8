package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Import    *ImportConfig
}

type ServerConfig struct {
	AppName        string        // AnhThu
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	Insecure     bool
	MaxConns     int
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ProductTTL      time.Duration
	CategoryTTL     time.Duration
}

type RateLimitConfig struct {
	Enabled         bool
	GeneralLimit    int
	GeneralWindow   time.Duration
	AdminLimit      int
	AdminWindow     time.Duration
	ExpensiveLimit  int
	ExpensiveWindow time.Duration
}

type EmailConfig struct {
	ApiKey        string
	From          string
	OperatorEmail string // import run summaries go here when set
}

// ImportConfig drives the one-shot spreadsheet migration in cmd/import.
// File paths left empty mean "source not available this run"; the pipeline
// reports and continues with what it has, except the POS export which is
// required.
type ImportConfig struct {
	POSFile       string // point-of-sale export (KiotViet style)
	BasicFile     string // marketplace basic-info export
	MediaFile     string // marketplace media/images export
	SalesFile     string // marketplace sales/variants export
	POSOffset     int    // header-row offset per source file
	BasicOffset   int
	MediaOffset   int
	SalesOffset   int
	ExchangeRate  float64 // VND per USD, fixed at import time
	RootCategory  string  // known root segment stripped from category paths
	FallbackLabel string  // category used when a row carries none
	BatchSize     int     // products per upsert batch
	Translate     bool    // best-effort vi->en translation of names/categories
	SKUMapFile    string  // JSON side-file mapping SKU -> product id
}
