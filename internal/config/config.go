package config

import (
	"os"
	"strconv"
)

const insecureDefaultJWTSecret = "change-me-in-production"

type Config struct {
	DB           DBConfig
	Storage      StorageConfig
	JWT          JWTConfig
	Verification VerificationConfig
	SMTP         SMTPConfig
	Server       ServerConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StorageConfig selects the object-storage backend. Backend is either
// "minio" or "local"; the local backend is a development fallback that keeps
// blobs under RootDir.
type StorageConfig struct {
	Backend string
	Bucket  string
	RootDir string
	MinIO   MinIOConfig
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type JWTConfig struct {
	Secret         string
	Issuer         string
	ExpirationDays int
}

type VerificationConfig struct {
	TokenExpirationHours int
}

type SMTPConfig struct {
	Enabled bool
	Host    string
	Port    string
	From    string
	BaseURL string
}

type ServerConfig struct {
	Port string
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "filemanager"),
			Password: getEnv("DB_PASSWORD", "filemanager_secret"),
			Name:     getEnv("DB_NAME", "filemanager"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "local"),
			Bucket:  getEnv("STORAGE_BUCKET", "filemanager"),
			RootDir: getEnv("STORAGE_LOCAL_ROOT", defaultLocalRoot()),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("MINIO_ACCESS_KEY", "filemanager"),
				SecretKey: getEnv("MINIO_SECRET_KEY", "filemanager_secret"),
				UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			},
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", insecureDefaultJWTSecret),
			Issuer:         getEnv("JWT_ISSUER", "filemanager"),
			ExpirationDays: getEnvAsInt("JWT_EXPIRATION_DAYS", 15),
		},
		Verification: VerificationConfig{
			TokenExpirationHours: getEnvAsInt("VERIFICATION_TOKEN_EXPIRATION_HOURS", 24),
		},
		SMTP: SMTPConfig{
			Enabled: getEnvAsBool("EMAIL_ENABLED", false),
			Host:    getEnv("SMTP_HOST", "localhost"),
			Port:    getEnv("SMTP_PORT", "25"),
			From:    getEnv("SMTP_FROM", "noreply@filemanager.local"),
			BaseURL: getEnv("APP_BASE_URL", "http://localhost:3001"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
	}
}

// UsingInsecureJWTSecret reports whether the JWT secret was left at its
// default. Tokens signed with the default are forgeable, so main logs a loud
// warning at startup when this returns true.
func (c *Config) UsingInsecureJWTSecret() bool {
	return c.JWT.Secret == insecureDefaultJWTSecret
}

func defaultLocalRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".filemanager/storage"
	}
	return home + "/.filemanager/storage"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
