package handlers

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// WithUser stores the authenticated identity on the request context.
func WithUser(ctx context.Context, userID int, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// UserFromContext returns the authenticated user id and role.
// Для неаутентифицированных запросов возвращает 0 и пустую роль.
func UserFromContext(ctx context.Context) (int, string) {
	userID, _ := ctx.Value(userIDKey).(int)
	role, _ := ctx.Value(roleKey).(string)
	return userID, role
}

func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(":id"))
}
