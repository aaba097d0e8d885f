// Package config loads the application configuration from an optional
// yaml file with environment overrides for deploy-time secrets.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type LoggerConfig struct {
	Mode       string `yaml:"mode"` // "development" or "production"
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type GeminiConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
}

type Config struct {
	Listen         string       `yaml:"listen"`
	AllowedOrigins []string     `yaml:"allowed_origins"`
	JWTSecret      string       `yaml:"jwt_secret"`
	Logger         LoggerConfig `yaml:"logger"`
	Gemini         GeminiConfig `yaml:"gemini"`
}

func defaults() *Config {
	return &Config{
		Listen:         ":8080",
		AllowedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      "SECRET",
		Logger: LoggerConfig{
			Mode:     "development",
			Filename: "blinkfast.log",
		},
		Gemini: GeminiConfig{
			Model:    "gemini-3-flash-preview",
			Endpoint: "https://generativelanguage.googleapis.com",
		},
	}
}

// Load reads the yaml file at path when it exists, then applies env
// overrides. A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		path = os.Getenv("BLINKFAST_CONFIG")
	}
	if path == "" {
		path = "blinkfast.yml"
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("BLINKFAST_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("BLINKFAST_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("GEMINI_ENDPOINT"); v != "" {
		cfg.Gemini.Endpoint = v
	}
	return cfg, nil
}
