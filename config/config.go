package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetList splits a comma separated value, dropping empty items.
func GetList(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Config is the typed view of the environment the server runs with.
type Config struct {
	Port string

	DBType          string
	DatabaseURL     string
	ReplicaURLs     []string
	SlowQuery       time.Duration
	RunMigrations   bool
	JWTSecret       string
	SessionTTL      time.Duration
	SessionCookie   string
	AdminUsernames  []string
	AcceptedOrigins []string
	LoginPerMinute  int
	BcryptCost      int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromMap(New())
}

func FromMap(c map[string]string) Config {
	seconds := func(key string, def int) time.Duration {
		return time.Duration(GetInt(c, key, def)) * time.Second
	}

	return Config{
		Port:            GetString(c, "PORT", "8080"),
		DBType:          strings.ToLower(GetString(c, "DB_TYPE", "postgres")),
		DatabaseURL:     GetString(c, "DATABASE_URL", ""),
		ReplicaURLs:     GetList(c, "DB_REPLICA_URLS"),
		SlowQuery:       time.Duration(GetInt(c, "DB_SLOW_QUERY_MS", 200)) * time.Millisecond,
		RunMigrations:   GetBool(c, "RUN_MIGRATIONS", true),
		JWTSecret:       GetString(c, "JWT_SECRET", ""),
		SessionTTL:      time.Duration(GetInt(c, "SESSION_TTL_HOURS", 24*14)) * time.Hour,
		SessionCookie:   GetString(c, "SESSION_COOKIE", "blogicum_session"),
		AdminUsernames:  GetList(c, "ADMIN_USERNAMES"),
		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS"),
		LoginPerMinute:  GetInt(c, "LOGIN_RATE_PER_MINUTE", 5),
		BcryptCost:      GetInt(c, "BCRYPT_COST", 0),
		ReadTimeout:     seconds("READ_TIMEOUT_SECONDS", 15),
		WriteTimeout:    seconds("WRITE_TIMEOUT_SECONDS", 15),
		IdleTimeout:     seconds("IDLE_TIMEOUT_SECONDS", 60),
		ShutdownTimeout: seconds("SHUTDOWN_TIMEOUT_SECONDS", 30),
	}
}
