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
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	Gateway     GatewayConfig
	Idempotency IdempotencyConfig
	Risk        RiskConfig
	Saga        SagaConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

// Empty URL disables the fast idempotency tier and forces the memory throttle store.
type RedisConfig struct {
	URL         string        `envconfig:"REDIS_URL" default:""`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"2s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotency-Replayed,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type GatewayConfig struct {
	Driver         string        `envconfig:"GATEWAY_DRIVER" default:"simulated"`
	Timeout        time.Duration `envconfig:"PAYMENT_GATEWAY_TIMEOUT" default:"10s"`
	SimulatedDelay time.Duration `envconfig:"GATEWAY_SIMULATED_DELAY" default:"0s"`
	BaseURL        string        `envconfig:"GATEWAY_BASE_URL" default:"https://sandbox-api.iyzipay.com"`
	APIKey         string        `envconfig:"GATEWAY_API_KEY" default:""`
	SecretKey      string        `envconfig:"GATEWAY_SECRET_KEY" default:""`
	Currency       string        `envconfig:"GATEWAY_CURRENCY" default:"TRY"`
}

type IdempotencyConfig struct {
	TTL        time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	RequireKey bool          `envconfig:"IDEMPOTENCY_REQUIRE_KEY" default:"false"`
}

type RiskConfig struct {
	ThrottleStore        string        `envconfig:"RISK_THROTTLE_STORE" default:"memory"`
	LoginWindow          time.Duration `envconfig:"RISK_LOGIN_WINDOW" default:"15m"`
	LoginMaxAttempts     int           `envconfig:"RISK_LOGIN_MAX_ATTEMPTS" default:"5"`
	ExpensiveDailyPrice  int64         `envconfig:"RISK_EXPENSIVE_DAILY_PRICE" default:"1000"`
	BlockHigh            bool          `envconfig:"RISK_BLOCK_HIGH" default:"false"`
	RegistrationWindow   time.Duration `envconfig:"RISK_REGISTRATION_WINDOW" default:"5m"`
	RegistrationMaxCount int           `envconfig:"RISK_REGISTRATION_MAX" default:"10"`
}

type SagaConfig struct {
	HoldTTL          time.Duration `envconfig:"SAGA_HOLD_TTL" default:"15m"`
	HoldReapInterval time.Duration `envconfig:"SAGA_HOLD_REAP_INTERVAL" default:"1m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
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
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-jwt-signing",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "168h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Gateway: GatewayConfig{
			Driver:   "simulated",
			Timeout:  2 * time.Second,
			Currency: "TRY",
		},
		Idempotency: IdempotencyConfig{
			TTL: 24 * time.Hour,
		},
		Risk: RiskConfig{
			ThrottleStore:        "memory",
			LoginWindow:          15 * time.Minute,
			LoginMaxAttempts:     5,
			ExpensiveDailyPrice:  1000,
			RegistrationWindow:   5 * time.Minute,
			RegistrationMaxCount: 10,
		},
		Saga: SagaConfig{
			HoldTTL:          15 * time.Minute,
			HoldReapInterval: time.Minute,
		},
	}
}
