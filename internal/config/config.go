package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string

	ServerPort int

	// Remote burger API, e.g. https://enqh5c880l.execute-api.eu-west-3.amazonaws.com
	APIBaseURL string

	// Hosted login (Cognito-style hosted UI).
	AuthDomain   string
	AuthClientID string
	RedirectBase string
	AuthScopes   []string

	// Single-session blob store.
	SessionDBPath string

	// Legacy static data file. When set, the public list reads from it
	// instead of the live API.
	DataFile string

	KafkaBrokers []string
	AuditTopic   string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "daburgger"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		APIBaseURL: os.Getenv("API_BASE_URL"),

		AuthDomain:   os.Getenv("AUTH_DOMAIN"),
		AuthClientID: os.Getenv("AUTH_CLIENT_ID"),
		RedirectBase: EnvDefault("REDIRECT_BASE", "http://localhost:8080"),
		AuthScopes:   CSVDefault(os.Getenv("AUTH_SCOPES"), []string{"openid", "email", "profile"}),

		SessionDBPath: EnvDefault("SESSION_DB_PATH", "daburgger.db"),

		DataFile: os.Getenv("DATA_FILE"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   EnvDefault("AUDIT_TOPIC", "burger_events"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CSVDefault(v string, def []string) []string {
	if out := CSV(v); out != nil {
		return out
	}
	return def
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
