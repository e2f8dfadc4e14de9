package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int
}

// DefaultCORSConfig allows any origin. The API is meant for a local
// desktop widget or script.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin"},
		MaxAge:       86400,
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed.
func (c CORSConfig) allowOrigin(origin string) string {
	if slices.Contains(c.AllowOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(c.AllowOrigins, origin) {
		return origin
	}
	return ""
}

func (c CORSConfig) headers(origin string) map[string]string {
	allowed := c.allowOrigin(origin)
	if allowed == "" {
		return nil
	}
	h := map[string]string{
		"Access-Control-Allow-Origin":  allowed,
		"Access-Control-Allow-Methods": strings.Join(c.AllowMethods, ", "),
		"Access-Control-Allow-Headers": strings.Join(c.AllowHeaders, ", "),
		"Access-Control-Max-Age":       strconv.Itoa(c.MaxAge),
	}
	if allowed != "*" {
		h["Vary"] = "Origin"
	}
	return h
}

// NewCORSMiddleware creates CORS middleware with the given configuration
func NewCORSMiddleware(config CORSConfig) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		for k, v := range config.headers(ctx.Header("Origin")) {
			ctx.SetHeader(k, v)
		}
		if ctx.Method() == http.MethodOptions {
			ctx.SetStatus(http.StatusNoContent)
			return
		}
		next(ctx)
	}
}

// AddCORSHandler answers preflight requests on the mux. Huma middleware
// never sees OPTIONS for paths without an OPTIONS operation.
func AddCORSHandler(mux *http.ServeMux, config CORSConfig) {
	mux.HandleFunc("OPTIONS /", func(w http.ResponseWriter, r *http.Request) {
		for k, v := range config.headers(r.Header.Get("Origin")) {
			w.Header().Set(k, v)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
