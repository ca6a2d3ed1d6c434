package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Google   GoogleConfig
	Region   RegionConfig
	Sync     SyncConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout int // seconds
}

// RegionConfig describes the fixed service region used for
// synchronization and the region-listing endpoint.
type RegionConfig struct {
	Name     string
	Lat      float64
	Lon      float64
	RadiusKm float64
}

type SyncConfig struct {
	Types      []string
	MaxPerType int
	// PageDelay is waited before every continuation-token page; the
	// provider invalidates tokens requested too soon after issuance.
	PageDelay     time.Duration
	RunTimeout    time.Duration
	LockTTL       time.Duration
	Interval      time.Duration
	WorkerEnabled bool
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Google: GoogleConfig{
			APIKey:         viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:        viper.GetString("GOOGLE_MAPS_BASE_URL"),
			RequestTimeout: viper.GetInt("GOOGLE_REQUEST_TIMEOUT"),
		},
		Region: RegionConfig{
			Name:     viper.GetString("REGION_NAME"),
			Lat:      viper.GetFloat64("REGION_LAT"),
			Lon:      viper.GetFloat64("REGION_LON"),
			RadiusKm: viper.GetFloat64("REGION_RADIUS_KM"),
		},
		Sync: SyncConfig{
			Types:         parseTypes(viper.GetString("SYNC_TYPES")),
			MaxPerType:    viper.GetInt("SYNC_MAX_PER_TYPE"),
			PageDelay:     time.Duration(viper.GetInt("SYNC_PAGE_DELAY_MS")) * time.Millisecond,
			RunTimeout:    time.Duration(viper.GetInt("SYNC_RUN_TIMEOUT")) * time.Second,
			LockTTL:       time.Duration(viper.GetInt("SYNC_LOCK_TTL")) * time.Second,
			Interval:      time.Duration(viper.GetInt("SYNC_INTERVAL")) * time.Second,
			WorkerEnabled: viper.GetBool("SYNC_WORKER_ENABLED"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Google.BaseURL == "" {
		cfg.Google.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	if cfg.Google.RequestTimeout == 0 {
		cfg.Google.RequestTimeout = 30
	}
	if cfg.Region.Name == "" {
		cfg.Region.Name = "ismailia"
	}
	if cfg.Region.Lat == 0 && cfg.Region.Lon == 0 {
		// Ismailia center
		cfg.Region.Lat = 30.6043
		cfg.Region.Lon = 32.2723
	}
	if cfg.Region.RadiusKm == 0 {
		cfg.Region.RadiusKm = 20
	}
	if len(cfg.Sync.Types) == 0 {
		cfg.Sync.Types = []string{"cafe", "restaurant", "pharmacy", "tourist_attraction"}
	}
	if cfg.Sync.MaxPerType == 0 {
		cfg.Sync.MaxPerType = 60
	}
	if cfg.Sync.PageDelay == 0 {
		cfg.Sync.PageDelay = 2 * time.Second
	}
	if cfg.Sync.RunTimeout == 0 {
		cfg.Sync.RunTimeout = 5 * time.Minute
	}
	if cfg.Sync.LockTTL == 0 {
		cfg.Sync.LockTTL = 10 * time.Minute
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 6 * time.Hour
	}

	return cfg, nil
}

func parseTypes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
