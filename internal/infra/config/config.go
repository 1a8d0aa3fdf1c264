package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is built once at process start and injected into every component
// that needs it; no package reads the environment on its own.
type Config struct {
	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
	Audience        string

	HTTPAddress string
	WebHostURL  string
	UploadDir   string

	AllowedOrigins   []string
	AllowCredentials bool
}

var envKeys = []string{
	"DATABASE_URL",
	"JWT_SECRET",
	"ACCESS_TOKEN_TTL",
	"REFRESH_TOKEN_TTL",
	"JWT_ISSUER",
	"JWT_AUDIENCE",
	"HTTP_ADDRESS",
	"WEB_HOST_URL",
	"UPLOAD_DIR",
	"ALLOWED_ORIGINS",
	"ALLOW_CREDENTIALS",
}

func Load() (*Config, error) {
	viper.AutomaticEnv()
	for _, key := range envKeys {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("UPLOAD_DIR", "./public")

	cfg := &Config{
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		AccessTokenTTL:   viper.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  viper.GetDuration("REFRESH_TOKEN_TTL"),
		Issuer:           viper.GetString("JWT_ISSUER"),
		Audience:         viper.GetString("JWT_AUDIENCE"),
		HTTPAddress:      viper.GetString("HTTP_ADDRESS"),
		WebHostURL:       strings.TrimRight(viper.GetString("WEB_HOST_URL"), "/"),
		UploadDir:        viper.GetString("UPLOAD_DIR"),
		AllowCredentials: viper.GetBool("ALLOW_CREDENTIALS"),
	}

	if origins := viper.GetString("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"JWT_SECRET":   cfg.JWTSecret,
		"WEB_HOST_URL": cfg.WebHostURL,
	}
	for key, val := range required {
		if val == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", key)
		}
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be a positive duration")
	}
	if cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL must be a positive duration")
	}

	return cfg, nil
}
