package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth middleware аутентификации. Извлекает ID пользователя из
// заголовка X-User-ID и кладет его в контекст запроса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
