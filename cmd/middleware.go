package main

import (
	"fmt"
	"net/http"
	"strings"

	"avidoBack/internal/handlers"
	"avidoBack/internal/models"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.errorLog.Printf("panic: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// identifyUser кладёт личность из Bearer-токена в контекст, но не требует её.
// Публичные ручки различают гостя и владельца именно через неё.
func (app *application) identifyUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken := strings.TrimPrefix(authHeader, "Bearer ")
			if userID, role, err := app.tokenManager.Parse(accessToken); err == nil {
				r = r.WithContext(handlers.WithUser(r.Context(), userID, role))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole gates the route. "user" admits any authenticated caller,
// "staff" only moderators and admins.
func (app *application) requireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Authorization header missing or invalid", http.StatusUnauthorized)
				return
			}
			accessToken := strings.TrimPrefix(authHeader, "Bearer ")

			userID, role, err := app.tokenManager.Parse(accessToken)
			if err != nil {
				http.Error(w, "Invalid access token", http.StatusUnauthorized)
				return
			}

			switch requiredRole {
			case "staff":
				if !models.IsStaff(role) {
					http.Error(w, "Forbidden: staff only", http.StatusForbidden)
					return
				}
			case "user":
				// любой аутентифицированный
			default:
				http.Error(w, fmt.Sprintf("unknown role gate %q", requiredRole), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), userID, role)))
		})
	}
}
