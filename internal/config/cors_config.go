package config

import (
	"os"
	"strings"
)

const allowedOriginsVar = "ALLOWED_ORIGINS"

type Cors struct {
	file *File
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins reads a comma separated ALLOWED_ORIGINS, then the file,
// and defaults to the local front end origins.
func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := c.file.Server.AllowedOrigins
	if env := os.Getenv(allowedOriginsVar); env != "" {
		origins = strings.Split(env, ",")
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost", "http://localhost:5173", "http://127.0.0.1:5500"}
	}
	allowed := AllowedOrigins{}
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = nullValue{}
		}
	}
	return allowed
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PATCH, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization, Refresh-Token, Accept"
}
