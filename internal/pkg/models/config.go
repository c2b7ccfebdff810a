package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Goong    GoongConfig
	Tracking TrackingConfig
	Region   RegionConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// GoongConfig contains the routing provider configuration
type GoongConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// TrackingConfig contains tracking service specific configuration
type TrackingConfig struct {
	LocationTTLMinutes    int     // how long a cached shipper location stays fresh
	StaleThresholdMinutes int     // viewer-side staleness threshold
	PublishIntervalSec    int     // shipper sampling cadence
	PollIntervalSec       int     // viewer polling fallback cadence
	DefaultVehicle        string  // vehicle class when the client omits one
	RegionGeohashLen      uint    // precision of the geohash cell tagged on samples
	MinAccuracyMeters     float64 // samples worse than this are flagged, not rejected
}

// RegionConfig is the service region bounding box. Samples outside it are
// flagged for ops but never rejected.
type RegionConfig struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// LoggerConfig contains structured logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
