package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configPathEnvVar = "TRUEDEV_CONFIG"

// File mirrors the YAML configuration file. Every field is optional; env vars
// take precedence over anything set here.
type File struct {
	AppName  string `yaml:"app_name"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`

	API struct {
		BaseURL    string `yaml:"base_url"`
		PageOrigin string `yaml:"page_origin"`
		Timeout    string `yaml:"timeout"`
	} `yaml:"api"`

	Storage struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"storage"`

	Session struct {
		RefreshMode string `yaml:"refresh_mode"`
	} `yaml:"session"`

	Server struct {
		Port               string   `yaml:"port"`
		JWTSecret          string   `yaml:"jwt_secret"`
		AccessTokenExpiry  string   `yaml:"access_token_expiry"`
		RefreshTokenExpiry string   `yaml:"refresh_token_expiry"`
		PageSize           int      `yaml:"page_size"`
		AllowedOrigins     []string `yaml:"allowed_origins"`
	} `yaml:"server"`
}

// ReadFile parses the YAML file at path. An empty path or a missing file
// yields an empty File.
func ReadFile(path string) (*File, error) {
	f := &File{}
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config.ReadFile: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config.ReadFile %s: %w", path, err)
	}
	return f, nil
}

// DefaultPath returns TRUEDEV_CONFIG if set, otherwise ~/.truedev/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(configPathEnvVar); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".truedev", "config.yaml")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
