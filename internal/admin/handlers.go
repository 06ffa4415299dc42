package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/models"
	"github.com/univbot/schedule-system/internal/storage"
)

// Время, отводимое на ручное обновление расписания
const refreshTimeout = 2 * time.Minute

// Runner запускает одно обновление расписания
type Runner interface {
	Run(ctx context.Context) (*models.Artifact, error)
}

// AdminHandler обрабатывает админские запросы
type AdminHandler struct {
	store       storage.Storage
	logger      logger.Logger
	runner      Runner
	passwordMgr *PasswordManager
	jwtManager  *JWTManager
	authMw      *AuthMiddleware
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse представляет ответ на запрос входа
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshResponse представляет результат ручного обновления расписания
type RefreshResponse struct {
	Run         *models.Run `json:"run"`
	FirstWeek   int         `json:"first_week_blocks"`
	SecondWeek  int         `json:"second_week_blocks"`
	TriggeredAt time.Time   `json:"triggered_at"`
}

// NewAdminHandler создает обработчик админских запросов
func NewAdminHandler(store storage.Storage, logger logger.Logger, runner Runner, dataDir string, jwtSecret string) *AdminHandler {
	jwtManager := NewJWTManager(jwtSecret)
	return &AdminHandler{
		store:       store,
		logger:      logger,
		runner:      runner,
		passwordMgr: NewPasswordManager(dataDir),
		jwtManager:  jwtManager,
		authMw:      NewAuthMiddleware(jwtManager, logger),
	}
}

// RegisterRoutes регистрирует админские маршруты
func (ah *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/admin/login", ah.LoginHandler)
	r.Post("/api/admin/refresh", ah.authMw.RequireAuth(ah.RefreshHandler))
}

// LoginHandler проверяет пароль администратора и выдает JWT-токен
func (ah *AdminHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := ah.passwordMgr.VerifyPassword(req.Password); err != nil {
		if errors.Is(err, ErrPasswordNotSet) {
			ah.logger.Error("Попытка входа при неустановленном пароле администратора")
			http.Error(w, "Пароль администратора не установлен", http.StatusForbidden)
			return
		}
		ah.logger.Error("Неудачная попытка входа администратора")
		http.Error(w, "Неверный пароль", http.StatusUnauthorized)
		return
	}

	token, err := ah.jwtManager.GenerateToken()
	if err != nil {
		ah.logger.Errorf("Ошибка генерации токена: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(tokenExpiration),
	}); err != nil {
		ah.logger.Errorf("Error writing response %v", err)
	}
}

// RefreshHandler запускает внеплановое обновление расписания
func (ah *AdminHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	ah.logger.Info("Запрошено ручное обновление расписания")

	ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
	defer cancel()

	artifact, err := ah.runner.Run(ctx)
	if err != nil {
		ah.logger.Errorf("Ошибка обновления расписания: %v", err)
		http.Error(w, "Не удалось обновить расписание", http.StatusBadGateway)
		return
	}

	run, err := ah.store.GetLastRun()
	if err != nil && !errors.Is(err, storage.ErrRunNotFound) {
		ah.logger.Errorf("Ошибка чтения истории обновлений: %v", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(RefreshResponse{
		Run:         run,
		FirstWeek:   len(artifact.Lessons.FirstWeek),
		SecondWeek:  len(artifact.Lessons.SecondWeek),
		TriggeredAt: time.Now(),
	}); err != nil {
		ah.logger.Errorf("Error writing response %v", err)
	}
}
