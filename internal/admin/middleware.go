package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/univbot/schedule-system/internal/logger"
)

// AuthMiddleware представляет middleware для аутентификации администратора
type AuthMiddleware struct {
	jwtManager *JWTManager
	logger     logger.Logger
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtManager *JWTManager, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// RequireAuth проверяет JWT-токен администратора перед вызовом обработчика
func (am *AuthMiddleware) RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Требуется аутентификация", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Неверный формат токена", http.StatusUnauthorized)
			return
		}

		claims, err := am.jwtManager.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				http.Error(w, "Срок действия токена истек", http.StatusUnauthorized)
			} else {
				http.Error(w, "Недействительный токен", http.StatusUnauthorized)
			}
			return
		}

		if !claims.IsAdmin {
			http.Error(w, "Доступ запрещен", http.StatusForbidden)
			return
		}

		handler(w, r)
	}
}
