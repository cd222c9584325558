package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Client holds everything the terminal client needs.
type Client struct {
	APIBaseURL      string
	GeminiAPIKey    string
	HTTPLog         string
	CredentialsFile string
	Timeout         time.Duration
}

// Server holds the local development backend's settings.
type Server struct {
	Host         string
	Port         int
	DatabasePath string
	JWTSecret    string
	EncryptKey   string
	UploadDir    string
	TokenTTL     time.Duration
	Debug        bool
}

// LoadClient reads the client configuration from the environment. Only the
// base URL is strictly required; the assistant stays disabled without a key.
func LoadClient() (*Client, error) {
	cfg := &Client{
		APIBaseURL:      getEnv("GARAGE_API_BASE_URL", "http://localhost:8080"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		HTTPLog:         getEnv("GARAGE_HTTP_LOG", "none"),
		CredentialsFile: getEnv("GARAGE_CREDENTIALS_FILE", defaultCredentialsFile()),
		Timeout:         time.Duration(getEnvAsInt("GARAGE_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("GARAGE_API_BASE_URL is required")
	}
	return cfg, nil
}

// LoadServer reads the dev backend configuration from the environment.
func LoadServer() (*Server, error) {
	cfg := &Server{
		Host:         getEnv("HTTP_HOST", "0.0.0.0"),
		Port:         getEnvAsInt("HTTP_PORT", 8080),
		DatabasePath: getEnv("DATABASE_PATH", "tuninggarage.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		EncryptKey:   os.Getenv("ENCRYPTION_KEY"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		TokenTTL:     time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24)) * time.Minute,
		Debug:        getEnvAsBool("DEBUG", true),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.EncryptKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is required")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return cfg, nil
}

func (c *Server) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tuninggarage/session.json"
	}
	return home + "/.tuninggarage/session.json"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
