package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"campusdrop/internal/pkg/models"
)

// InitConfig loads configuration from an optional config file plus
// environment variables. Environment variables win; keys are upper-snake
// versions of the config paths (e.g. LOCATION_EDGE_BUFFER_M).
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("no config file loaded, using env and defaults: %v", err)
	}

	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "campusdrop")
	v.SetDefault("app.environment", "local")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "dev")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 9990)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.idle_conns", 2)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("nsq.address", "localhost:4150")

	v.SetDefault("logger.level", "info")

	v.SetDefault("location.edge_buffer_m", 50.0)
	v.SetDefault("location.fast_slack_m", 0.0)

	v.SetDefault("connectivity.staleness_horizon", 5*time.Minute)
	v.SetDefault("connectivity.record_ttl", 24*time.Hour)

	v.SetDefault("scheduler.wake_interval", 10*time.Minute)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("app.name")
	configs.App.Environment = v.GetString("app.environment")
	configs.App.Debug = v.GetBool("app.debug")
	configs.App.Version = v.GetString("app.version")

	configs.Server.Host = v.GetString("server.host")
	configs.Server.Port = v.GetInt("server.port")
	configs.Server.ReadTimeout = v.GetInt("server.read_timeout")
	configs.Server.WriteTimeout = v.GetInt("server.write_timeout")
	configs.Server.ShutdownTimeout = v.GetInt("server.shutdown_timeout")
	configs.Server.InternalAPIKey = v.GetString("server.internal_api_key")

	configs.Database.Host = v.GetString("database.host")
	configs.Database.Port = v.GetInt("database.port")
	configs.Database.Username = v.GetString("database.username")
	configs.Database.Password = v.GetString("database.password")
	configs.Database.Database = v.GetString("database.database")
	configs.Database.SSLMode = v.GetString("database.ssl_mode")
	configs.Database.MaxConns = v.GetInt("database.max_conns")
	configs.Database.IdleConns = v.GetInt("database.idle_conns")

	configs.Redis.Host = v.GetString("redis.host")
	configs.Redis.Port = v.GetInt("redis.port")
	configs.Redis.Password = v.GetString("redis.password")
	configs.Redis.DB = v.GetInt("redis.db")
	configs.Redis.PoolSize = v.GetInt("redis.pool_size")

	configs.NSQ.Address = v.GetString("nsq.address")
	configs.NSQ.LookupAddresses = v.GetStringSlice("nsq.lookup_addresses")

	configs.Logger.Level = v.GetString("logger.level")
	configs.Logger.FilePath = v.GetString("logger.file_path")

	configs.Location.EdgeBufferM = v.GetFloat64("location.edge_buffer_m")
	configs.Location.FastSlackM = v.GetFloat64("location.fast_slack_m")

	configs.Connectivity.StalenessHorizon = v.GetDuration("connectivity.staleness_horizon")
	configs.Connectivity.RecordTTL = v.GetDuration("connectivity.record_ttl")
	if configs.Connectivity.RecordTTL < configs.Connectivity.StalenessHorizon {
		configs.Connectivity.RecordTTL = configs.Connectivity.StalenessHorizon
	}

	configs.Scheduler.WakeInterval = v.GetDuration("scheduler.wake_interval")

	return configs
}
