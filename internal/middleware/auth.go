package middleware

import (
	"context"
	"fortune_wheel/pkg/token"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	tokenKey
)

// WithUser кладет ID пользователя и его токен в контекст
func WithUser(ctx context.Context, userID int, accessToken string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, tokenKey, accessToken)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// TokenFromContext - исходный токен игрока, он пробрасывается на бэкенд звезд
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok
}

// Auth проверяет Bearer токен, выпущенный бэкендом звезд
func Auth(secretKey []byte, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, "missing access token", http.StatusUnauthorized)
				return
			}

			userID, err := token.UserID(raw, secretKey)
			if err != nil {
				log.Debug("access token rejected", zap.Error(err))
				http.Error(w, "invalid access token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, raw)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
