package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Config struct {
	AppEnv string
	Port   string

	BackendBaseURL string
	BackendTimeout time.Duration

	JWTSecret   string
	TokenCookie string

	// AllowUnverifiedToken hanya untuk development lokal tanpa JWT_SECRET.
	AllowUnverifiedToken bool

	RedisAddr   string
	KafkaBroker string
	DB          DBConfig

	CacheStaleAfter    time.Duration
	CacheEvictAfter    time.Duration
	CacheSweepInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string
	ReplicaID          string

	OutboxPollInterval time.Duration
}

// Production mengaktifkan cookie Secure dan gin release mode.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

var (
	ErrJWTSecretRequired      = errors.New("config: JWT_SECRET is required (set AUTH_ALLOW_UNVERIFIED=true only for local development)")
	ErrUnverifiedInProduction = errors.New("config: AUTH_ALLOW_UNVERIFIED cannot be used with APP_ENV=production")
)

// Validate menolak konfigurasi yang membuat token dashboard dipercaya tanpa
// verifikasi signature. Cache, view state, selection, dan activity dibaca
// tanpa lewat backend HR, jadi identitas dari token harus terverifikasi.
func (c Config) Validate() error {
	if c.AllowUnverifiedToken && c.Production() {
		return ErrUnverifiedInProduction
	}
	if c.JWTSecret == "" && !c.AllowUnverifiedToken {
		return ErrJWTSecretRequired
	}
	return nil
}

// Load membaca .env (jika ada) lalu environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	hostname, _ := os.Hostname()

	return Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "3000"),
		BackendBaseURL: os.Getenv("BACKEND_BASE_URL"),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", 10*time.Second),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenCookie:    getEnv("TOKEN_COOKIE", "token"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		CacheStaleAfter:    getDuration("CACHE_STALE_AFTER", 10*time.Minute),
		CacheEvictAfter:    getDuration("CACHE_EVICT_AFTER", 60*time.Minute),
		CacheSweepInterval: getDuration("CACHE_SWEEP_INTERVAL", time.Minute),
		RateLimitRPS:       getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     getInt("RATE_LIMIT_BURST", 40),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ReplicaID:          getEnv("REPLICA_ID", hostname),
		OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),

		AllowUnverifiedToken: getBool("AUTH_ALLOW_UNVERIFIED", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
