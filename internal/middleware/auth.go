package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"pratoria-backoffice-service/internal/auth"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

const authContextKey contextKey = "authContext"

type AuthContext struct {
	UserID    int64
	SessionID int64
	Role      auth.UserRole
	Email     string
	StoreID   *int64
	IsOwner   bool
}

func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	value := ctx.Value(authContextKey)
	if value == nil {
		return nil, false
	}
	ac, ok := value.(*AuthContext)
	return ac, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	writeAuthErrorDebug(w, status, message, "")
}

func writeAuthErrorDebug(w http.ResponseWriter, status int, message string, debug string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload := map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	}

	if os.Getenv("APP_ENV") == "development" && strings.TrimSpace(debug) != "" {
		payload["debug"] = debug
	}

	_ = json.NewEncoder(w).Encode(payload)
}

// StoreAuth validates the bearer token, the session and the user's link to
// the store. Reports cannot be computed without a resolvable store, so a
// missing store context is a hard 401 here, before the engine runs.
func StoreAuth(db *pgxpool.Pool, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ParseBearerToken(r.Header.Get("Authorization"))
			claims, err := auth.VerifyAccessToken(token, jwtSecret)
			if err != nil {
				writeAuthErrorDebug(w, http.StatusUnauthorized, "Authorization token required", err.Error())
				return
			}

			if claims.Role != auth.RoleStoreOwner && claims.Role != auth.RoleStoreStaff {
				writeAuthError(w, http.StatusForbidden, "Store access required")
				return
			}

			if claims.StoreID == nil {
				writeAuthError(w, http.StatusUnauthorized, "Store not found")
				return
			}
			storeID, err := parseInt64(*claims.StoreID)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Store not found")
				return
			}

			userID, err := parseInt64(claims.UserID)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			sessionID, err := parseInt64(claims.SessionID)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			// Validate session + store link + store status in one round trip.
			var (
				linkActive  bool
				storeActive bool
			)
			query := `
				select su.is_active, s.is_active
				from users u
				join store_users su on su.user_id = u.id and su.store_id = $2
				join stores s on s.id = su.store_id
				join user_sessions us on us.id = $3 and us.user_id = u.id and us.status = 'ACTIVE' and us.expires_at > now()
				where u.id = $1
			`
			err = db.QueryRow(r.Context(), query, userID, storeID, sessionID).Scan(&linkActive, &storeActive)
			if err != nil {
				writeAuthErrorDebug(w, http.StatusUnauthorized, "Store access required", err.Error())
				return
			}

			if !linkActive {
				writeAuthError(w, http.StatusForbidden, "Store access is disabled")
				return
			}
			if !storeActive {
				writeAuthError(w, http.StatusForbidden, "Store is currently disabled")
				return
			}

			authCtx := &AuthContext{
				UserID:    userID,
				SessionID: sessionID,
				Role:      claims.Role,
				Email:     claims.Email,
				StoreID:   &storeID,
				IsOwner:   claims.Role == auth.RoleStoreOwner,
			}

			ctx := WithAuthContext(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseInt64(value string) (int64, error) {
	var out int64
	_, err := fmt.Sscan(value, &out)
	return out, err
}
