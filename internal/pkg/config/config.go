package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Redis       RedisConfig
	AMQP        AMQPConfig
	Reservation ReservationConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	// required only when SEAT_STORE=postgres
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// Redis is only dialed when per-user serialization is enabled
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// empty URL disables event publishing
type AMQPConfig struct {
	URL       string `envconfig:"AMQP_URL" default:""`
	SeatQueue string `envconfig:"AMQP_SEAT_QUEUE" default:"seat.events"`
}

type ReservationConfig struct {
	Store            string        `envconfig:"SEAT_STORE" default:"postgres"`
	ReclaimInterval  time.Duration `envconfig:"RECLAIM_INTERVAL" default:"5m"`
	MinHours         int           `envconfig:"RESERVATION_MIN_HOURS" default:"1"`
	MaxHours         int           `envconfig:"RESERVATION_MAX_HOURS" default:"8"`
	SerializePerUser bool          `envconfig:"RESERVATION_SERIALIZE_PER_USER" default:"false"`
	UserLockTTL      time.Duration `envconfig:"RESERVATION_USER_LOCK_TTL" default:"10s"`
}

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c ReservationConfig) Validate() error {
	if c.Store != StorePostgres && c.Store != StoreMemory {
		return fmt.Errorf("unsupported SEAT_STORE %q", c.Store)
	}
	if c.MinHours < 1 || c.MaxHours < c.MinHours {
		return fmt.Errorf("invalid reservation hour bounds [%d, %d]", c.MinHours, c.MaxHours)
	}
	if c.ReclaimInterval <= 0 {
		return fmt.Errorf("RECLAIM_INTERVAL must be positive, got %s", c.ReclaimInterval)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Reservation.Validate(); err != nil {
		return fmt.Errorf("invalid reservation config: %w", err)
	}
	if c.Reservation.Store == StorePostgres && (c.DB.User == "" || c.DB.Password == "" || c.DB.DBName == "") {
		return fmt.Errorf("DB_USER, DB_PASSWORD and DB_NAME are required when SEAT_STORE=%s", StorePostgres)
	}
	if _, err := time.ParseDuration(c.JWT.Duration); err != nil {
		return fmt.Errorf("invalid JWT_DURATION: %w", err)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		AMQP: AMQPConfig{
			SeatQueue: "seat.events",
		},
		Reservation: ReservationConfig{
			Store:           StoreMemory,
			ReclaimInterval: 5 * time.Minute,
			MinHours:        1,
			MaxHours:        8,
			UserLockTTL:     10 * time.Second,
		},
	}
}
