package middleware

import (
	"net/http"
	"strings"

	"pratoria-backoffice-service/internal/auth"
)

// CronAuth guards scheduler-only endpoints with a shared bearer secret.
// An empty secret disables the endpoints entirely.
func CronAuth(cronSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := strings.TrimSpace(cronSecret)
			if secret == "" {
				writeAuthError(w, http.StatusForbidden, "Cron access is disabled")
				return
			}

			token := strings.TrimSpace(auth.ParseBearerToken(r.Header.Get("Authorization")))
			if token == "" || token != secret {
				writeAuthError(w, http.StatusUnauthorized, "Invalid cron token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
