package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"restaurant-admin/store"
	"restaurant-admin/store/mongostore"
	"restaurant-admin/store/sqlstore"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver      string
	DBSource      string
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins       []string
	StrictTransitions bool
	GeocoderURL       string
	GeocoderUserAgent string
	APIBaseURL        string
}

// Load reads an optional .env file, then the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Could not read .env file: %v", err)
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", ""),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBSource:          getEnv("DB_SOURCE", "restaurants.db"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "restaurant_admin"),
		JWTSecret:         getEnv("JWT_SECRET", "restaurant_admin_dev_secret"),
		JWTTTL:            getDuration("JWT_TTL", 7*24*time.Hour),
		CORSOrigins:       getList("CORS_ORIGINS"),
		StrictTransitions: getBool("ORDER_STRICT_TRANSITIONS", false),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "restaurant-admin/1.0"),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
	}
}

// OpenStore connects the backend named by DBDriver
func (c *Config) OpenStore(ctx context.Context) (*store.Store, error) {
	switch c.DBDriver {
	case DriverSQLite, "":
		return sqlstore.Open(c.DBSource)
	case DriverMongo:
		return mongostore.Open(ctx, c.MongoURI, c.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want %q or %q)", c.DBDriver, DriverSQLite, DriverMongo)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("⚠️  Ignoring invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  Ignoring invalid %s=%q", key, v)
		return fallback
	}
	return b
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
