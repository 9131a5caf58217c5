package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Defaults target local development; JWT_SECRET has no default.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// StoreDriver selects the user store: postgres or memory
	StoreDriver string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Migrations
	MigrationsDir string

	// Redis (rate limiting); empty address disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session
	JWTSecret  string
	BcryptCost int

	// Cookies
	CookieDomain string
	CookieSecure bool

	// Route guard
	ProtectedPrefixes string // comma-separated
	LoginPath         string
	FrontendDir       string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Google Cloud Storage (profile images); empty bucket disables uploads
	GCSBucket              string
	GCSCredentialsJSONPath string

	// RabbitMQ + Mailgun (account notifications)
	RabbitMQURL        string
	RabbitMQEmailQueue string
	MailSendEnabled    bool
	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSender      string
	CompanyName        string
	SupportURL         string
	LogoURL            string

	// Elasticsearch (admin user directory); empty addrs disables it
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESUsersIndex       string

	// Rate limits per client IP per minute
	LoginRateLimit    int
	RegisterRateLimit int

	// TrustProxyHeaders honours CF-Connecting-IP / X-Forwarded-For for client IPs
	TrustProxyHeaders bool

	MetricsEnabled bool
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	env := getenv("APP_ENV", "development")
	return &Config{
		AppName: getenv("APP_NAME", "marketplace-storefront"),
		Env:     env,
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		StoreDriver: getenv("STORE_DRIVER", "postgres"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "storefront"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: getint("BCRYPT_COST", 10),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", env != "development"),

		ProtectedPrefixes: getenv("PROTECTED_PREFIXES", "/account,/checkout,/orders"),
		LoginPath:         getenv("LOGIN_PATH", "/customer-login"),
		FrontendDir:       getenv("FRONTEND_DIR", ""),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "account-emails"),
		MailSendEnabled:    getbool("MAIL_SEND_ENABLED", true),
		MailgunDomain:      getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getenv("MAILGUN_API_KEY", ""),
		MailgunSender:      getenv("MAILGUN_SENDER", ""),
		CompanyName:        getenv("COMPANY_NAME", ""),
		SupportURL:         getenv("SUPPORT_URL", ""),
		LogoURL:            getenv("LOGO_URL", ""),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "users"),

		LoginRateLimit:    getint("LOGIN_RATE_LIMIT", 10),
		RegisterRateLimit: getint("REGISTER_RATE_LIMIT", 5),

		TrustProxyHeaders: getbool("TRUST_PROXY_HEADERS", false),

		MetricsEnabled: getbool("METRICS_ENABLED", true),
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

var (
	ErrJWTSecretMissing  = errors.New("JWT_SECRET must be set")
	ErrJWTSecretTooShort = errors.New("JWT_SECRET must be at least 32 bytes outside development")
	ErrUnknownStore      = errors.New("STORE_DRIVER must be postgres or memory")
)

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	if !c.IsDevelopment() && len(c.JWTSecret) < 32 {
		return ErrJWTSecretTooShort
	}
	if c.StoreDriver != "postgres" && c.StoreDriver != "memory" {
		return ErrUnknownStore
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string { return splitList(c.CORSAllowedOrigins) }

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string { return splitList(c.ElasticsearchAddrs) }

// GuardPrefixes returns the route guard's protected path prefixes.
func (c *Config) GuardPrefixes() []string { return splitList(c.ProtectedPrefixes) }

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
