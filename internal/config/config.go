package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

type AccountServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	MinioCfg    MinioConfig
	RabbitMQCfg RabbitMQConfig
	KeycloakCfg KeycloakConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type MinioConfig struct {
	MinioUrl         string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioLocation    string
	MinioSecure      string
	MinioResourceUrl string
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

type KeycloakConfig struct {
	BaseURL       string
	Realm         string
	AdminClientID string
	AdminUsername string
	AdminPassword string
}

func New() *AccountServiceConfig {
	return &AccountServiceConfig{
		Port: getEnvOrDefault("ACCOUNT_SERVICE_PORT", "8086"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "account_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "user"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		MinioCfg: MinioConfig{
			MinioUrl:         getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", ""),
			MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", ""),
			MinioLocation:    getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:      getEnvOrDefault("MINIO_SECURE", "false"),
			MinioResourceUrl: getEnvOrDefault("MINIO_RESOURCE_URL", "http://localhost:9000/"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "rabbitmq"),
			Username: getEnvOrDefault("RABBITMQ_USER", ""),
			Password: getEnvOrDefault("RABBITMQ_PWD", ""),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		KeycloakCfg: KeycloakConfig{
			BaseURL:       getEnvOrDefault("KEYCLOAK_BASE_URL", ""),
			Realm:         getEnvOrDefault("KEYCLOAK_REALM", ""),
			AdminClientID: getEnvOrDefault("KEYCLOAK_ADMIN_CLIENT_ID", "admin-cli"),
			AdminUsername: getEnvOrDefault("KEYCLOAK_ADMIN_USER", ""),
			AdminPassword: getEnvOrDefault("KEYCLOAK_ADMIN_PWD", ""),
		},
	}
}

// Validate reports every required secret that is still missing. A non-nil
// error is a startup-fatal condition, never a per-request one.
func (cfg *AccountServiceConfig) Validate() error {
	required := map[string]string{
		"POSTGRES_PASSWORD":   cfg.PostgresCfg.Password,
		"MINIO_ACCESS_KEY":    cfg.MinioCfg.MinioAccessKey,
		"MINIO_SECRET_KEY":    cfg.MinioCfg.MinioSecretKey,
		"RABBITMQ_USER":       cfg.RabbitMQCfg.Username,
		"RABBITMQ_PWD":        cfg.RabbitMQCfg.Password,
		"KEYCLOAK_BASE_URL":   cfg.KeycloakCfg.BaseURL,
		"KEYCLOAK_REALM":      cfg.KeycloakCfg.Realm,
		"KEYCLOAK_ADMIN_USER": cfg.KeycloakCfg.AdminUsername,
		"KEYCLOAK_ADMIN_PWD":  cfg.KeycloakCfg.AdminPassword,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
