package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Retry    Retry
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	JWTSecret string
	DevTokens bool
}

type Retry struct {
	MaxRetries    int
	BaseBackoffMS int
	MaxBackoffMS  int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RETRY_MAX_RETRIES", 3)
	viper.SetDefault("RETRY_BASE_BACKOFF_MS", 50)
	viper.SetDefault("RETRY_MAX_BACKOFF_MS", 2000)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.DevTokens = viper.GetBool("AUTH_DEV_TOKENS")

	config.Retry.MaxRetries = viper.GetInt("RETRY_MAX_RETRIES")
	config.Retry.BaseBackoffMS = viper.GetInt("RETRY_BASE_BACKOFF_MS")
	config.Retry.MaxBackoffMS = viper.GetInt("RETRY_MAX_BACKOFF_MS")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
