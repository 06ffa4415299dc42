package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/univbot/schedule-system/internal/logger"
	"github.com/univbot/schedule-system/internal/storage"
)

// Handler обрабатывает запросы к API расписания
type Handler struct {
	logger logger.Logger
	store  storage.Storage
}

func NewHandler(logger logger.Logger, store storage.Storage) *Handler {
	return &Handler{logger: logger, store: store}
}

func NewRouter(logger logger.Logger, store storage.Storage) chi.Router {
	r := chi.NewRouter()

	handler := NewHandler(logger, store)

	return r.Route("/", func(r chi.Router) {
		r.Get("/ping", handler.PingHandler)
		r.Get("/api/schedule", handler.ScheduleHandler)
		r.Get("/api/schedule/{week}", handler.WeekHandler)
		r.Get("/api/runs", handler.RunsHandler)
	})
}

func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Entered PingHandler")

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		h.logger.Errorf("Error writing response %v", err)
	}
}

// ScheduleHandler возвращает последний сохранённый артефакт расписания
func (h *Handler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Entered ScheduleHandler")

	artifact, err := h.store.GetSchedule()
	if err != nil {
		if errors.Is(err, storage.ErrScheduleNotFound) {
			http.Error(w, "Расписание ещё не загружено", http.StatusNotFound)
			return
		}
		h.logger.Errorf("Ошибка получения расписания: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, artifact)
}

// WeekHandler возвращает блоки одной недели: first или second
func (h *Handler) WeekHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Entered WeekHandler")

	artifact, err := h.store.GetSchedule()
	if err != nil {
		if errors.Is(err, storage.ErrScheduleNotFound) {
			http.Error(w, "Расписание ещё не загружено", http.StatusNotFound)
			return
		}
		h.logger.Errorf("Ошибка получения расписания: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	switch chi.URLParam(r, "week") {
	case "first":
		h.writeJSON(w, artifact.Lessons.FirstWeek)
	case "second":
		h.writeJSON(w, artifact.Lessons.SecondWeek)
	default:
		http.Error(w, "Неделя должна быть first или second", http.StatusBadRequest)
	}
}

// RunsHandler возвращает историю обновлений расписания
func (h *Handler) RunsHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Entered RunsHandler")

	runs, err := h.store.GetRuns()
	if err != nil {
		h.logger.Errorf("Ошибка получения истории обновлений: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, runs)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("Error writing response %v", err)
	}
}
