package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model. Values come from an
// optional YAML file with environment variables taking precedence.
type Config struct {
	Port           string   `yaml:"port"`
	AWSRegion      string   `yaml:"awsRegion"`
	RedisAddr      string   `yaml:"redisAddr"`
	S3Bucket       string   `yaml:"s3Bucket"`
	JWTSecret      string   `yaml:"jwtSecret"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	RateRPS        float64  `yaml:"rateRPS"`
	RateBurst      int      `yaml:"rateBurst"`
}

// Load reads path when it exists (path may be empty), then applies env
// overrides and defaults. JWT_SECRET is the only required value.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, err
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWSRegion = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("S3_BUCKET_NAME"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateRPS = f
		}
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateBurst = n
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.RateRPS == 0 {
		cfg.RateRPS = 20
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 40
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}
