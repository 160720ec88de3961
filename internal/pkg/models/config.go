package models

import "time"

// Config represents application configuration
type Config struct {
	App          AppConfig
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	NSQ          NSQConfig
	Logger       LoggerConfig
	Location     LocationConfig
	Connectivity ConnectivityConfig
	Scheduler    SchedulerConfig
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
	InternalAPIKey  string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
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

// NSQConfig contains NSQ connection configuration
type NSQConfig struct {
	Address         string
	LookupAddresses []string
}

// LoggerConfig contains structured logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// LocationConfig tunes area classification.
type LocationConfig struct {
	// EdgeBufferM is the tolerance in meters within which a point near a
	// boundary is treated as ambiguous rather than strictly inside/outside.
	EdgeBufferM float64
	// FastSlackM widens each area's nominal radius in fast mode, absorbing
	// GPS jitter on background pings.
	FastSlackM float64
}

// ConnectivityConfig tunes reachability tracking.
type ConnectivityConfig struct {
	// StalenessHorizon excludes records older than this from reachable
	// counts.
	StalenessHorizon time.Duration
	// RecordTTL is how long presence records live in Redis before
	// opportunistic eviction. Must be at least the staleness horizon.
	RecordTTL time.Duration
}

// SchedulerConfig tunes the request expiration loop.
type SchedulerConfig struct {
	// WakeInterval is how often the scheduler scans for overdue requests.
	WakeInterval time.Duration
}
