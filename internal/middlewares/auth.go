package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Bessima/food-dispatch/internal/handlers"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the bearer token (or access_token cookie) to an active admin.
func AuthMiddleware(authHandler *handlers.AuthHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			} else if cookie, err := r.Cookie("access_token"); err == nil {
				tokenString = cookie.Value
			}

			if tokenString == "" {
				http.Error(w, "Authorization token required", http.StatusUnauthorized)
				return
			}

			claims, err := authHandler.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}
			admin, err := authHandler.AdminStorage.GetByID(r.Context(), claims.AdminID)
			if err != nil || admin == nil {
				http.Error(w, "Admin not found", http.StatusUnauthorized)
				return
			}
			if !admin.IsActive {
				logger.Log.Info("inactive admin rejected", zap.String("admin_id", admin.ID))
				http.Error(w, "Admin is inactive", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.AdminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
