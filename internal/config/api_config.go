package config

import (
	"net"
	"net/url"
	"strings"
	"time"
)

const (
	baseURLVar     = "TRUEDEV_API_BASE_URL"
	pageOriginVar  = "TRUEDEV_PAGE_ORIGIN"
	httpTimeoutVar = "TRUEDEV_HTTP_TIMEOUT"

	// DefaultAPIPort is the port the backend listens on next to the page origin.
	DefaultAPIPort = "8080"
)

type API struct {
	file *File
}

var _ APIConfig = API{}

// GetBaseURL returns the injected override, or the page origin with its port
// replaced by DefaultAPIPort.
func (a API) GetBaseURL() string {
	if override := GetEnv(baseURLVar, a.file.API.BaseURL); override != "" {
		return strings.TrimRight(override, "/")
	}
	return DeriveBaseURL(a.GetPageOrigin())
}

func (a API) GetPageOrigin() string {
	return GetEnv(pageOriginVar, orDefault(a.file.API.PageOrigin, "http://localhost"))
}

func (a API) GetHTTPTimeout() time.Duration {
	return GetEnvDuration(httpTimeoutVar, a.file.API.Timeout, 30*time.Second)
}

// DeriveBaseURL keeps the scheme and hostname of origin and swaps the port for
// DefaultAPIPort. An unparseable origin falls back to http://localhost:8080.
func DeriveBaseURL(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return "http://localhost:" + DefaultAPIPort
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + net.JoinHostPort(u.Hostname(), DefaultAPIPort)
}
