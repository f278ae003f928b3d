package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coworking-lounge/zone-service/internal/api/handlers"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleStaff = "staff"

	msgUnauthorized = "требуется заголовок X-User-ID"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	staffKey
)

// Auth извлекает идентификацию пользователя из заголовков запроса.
// Аутентификацию выполняет шлюз выше по цепочке, здесь доверяем заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(headerUserID)
		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, staffKey, r.Header.Get(headerUserRole) == roleStaff)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор аутентифицированного пользователя
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsStaff сообщает, имеет ли пользователь роль персонала
func IsStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(staffKey).(bool)
	return staff
}
