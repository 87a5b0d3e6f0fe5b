package config

import (
	"fmt"
	"time"
)

const (
	portEnvVar            = "PORT"
	jwtSecretVar          = "JWT_SECRET_KEY"
	accessTokenExpiryVar  = "JWT_ACCESS_EXPIRY"
	refreshTokenExpiryVar = "JWT_REFRESH_EXPIRY"
	pageSizeVar           = "PAGE_SIZE"
)

// Server holds the settings of the development backend.
type Server struct {
	file *File
}

var _ ServerConfig = Server{}

func (s Server) GetPort() string {
	port := GetEnv(portEnvVar, orDefault(s.file.Server.Port, DefaultAPIPort))
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (s Server) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, orDefault(s.file.Server.JWTSecret, "truedev-development-secret-change-me"))
}

func (s Server) GetAccessTokenExpiry() time.Duration {
	return GetEnvDuration(accessTokenExpiryVar, s.file.Server.AccessTokenExpiry, 15*time.Minute)
}

func (s Server) GetRefreshTokenExpiry() time.Duration {
	return GetEnvDuration(refreshTokenExpiryVar, s.file.Server.RefreshTokenExpiry, 7*24*time.Hour)
}

func (s Server) GetPageSize() int {
	size := GetEnvInt(pageSizeVar, s.file.Server.PageSize)
	if size <= 0 {
		return 10
	}
	return size
}
