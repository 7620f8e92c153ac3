package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	TenantKey    contextKey = "tenant"
	RequestIDKey contextKey = "request_id"
)

// DefaultTenant is used by the unversioned routes and when auth is off.
const DefaultTenant = "public"

// operational endpoints bypass auth and rate limiting
func isOperational(path string) bool {
	switch path {
	case "/health", "/ready", "/live", "/metrics":
		return true
	}
	return false
}

// APIKeyAuth validates the API key from the Authorization or X-API-Key
// header and stores the tenant it belongs to. keys maps key -> tenant.
func APIKeyAuth(keys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isOperational(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if apiKey == "" {
				// Support both "Bearer <key>" and "<key>" formats
				apiKey = strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
			}
			if apiKey == "" {
				writeProblem(w, http.StatusUnauthorized, "missing API key")
				return
			}

			// constant-time comparison over every key
			var tenant string
			for key, t := range keys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					tenant = t
				}
			}
			if tenant == "" {
				writeProblem(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			ctx := context.WithValue(r.Context(), TenantKey, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTenantFromContext extracts tenant from context
func GetTenantFromContext(ctx context.Context) string {
	if tenant, ok := ctx.Value(TenantKey).(string); ok {
		return tenant
	}
	return ""
}

// RequireTenant validates the {tenant} URL parameter and, when a caller was
// authenticated, that it matches the caller's tenant.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlTenant := chi.URLParam(r, "tenant")
		if err := ValidateTenantID(urlTenant); err != nil {
			writeProblem(w, http.StatusBadRequest, err.Error())
			return
		}
		if auth := GetTenantFromContext(r.Context()); auth != "" && auth != urlTenant {
			writeProblem(w, http.StatusForbidden, "tenant mismatch")
			return
		}
		ctx := context.WithValue(r.Context(), TenantKey, urlTenant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
