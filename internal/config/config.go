package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	SessionConfig
	ServerConfig
	CorsConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type APIConfig interface {
	GetBaseURL() string
	GetPageOrigin() string
	GetHTTPTimeout() time.Duration
}

type StorageConfig interface {
	GetStorageBackend() string
	GetStoragePath() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

type SessionConfig interface {
	GetRefreshMode() string
}

type ServerConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetPageSize() int
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Session
	Server
	Cors
}

// New returns a configuration backed by environment variables only.
func New() Config {
	return newMainConfig(&File{})
}

// Load reads the optional YAML file at path and layers environment variables
// over it. A missing file is not an error.
func Load(path string) (Config, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newMainConfig(f), nil
}

func newMainConfig(f *File) Config {
	return mainConfig{
		EnvVars: EnvVars{file: f},
		API:     API{file: f},
		Storage: Storage{file: f},
		Session: Session{file: f},
		Server:  Server{file: f},
		Cors:    Cors{file: f},
	}
}
