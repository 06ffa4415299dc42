package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univbot/schedule-system/internal/models"
	"github.com/univbot/schedule-system/internal/storage"
)

// mockLogger реализует интерфейс logger для тестов
type mockLogger struct{}

func (m *mockLogger) Info(msg string)                   {}
func (m *mockLogger) Infof(format string, args ...any)  {}
func (m *mockLogger) Error(msg string)                  {}
func (m *mockLogger) Errorf(format string, args ...any) {}
func (m *mockLogger) Debug(msg string)                  {}
func (m *mockLogger) Debugf(format string, args ...any) {}

func testArtifact() *models.Artifact {
	return &models.Artifact{
		Lessons: models.ArtifactLessons{
			FirstWeek:  []string{"Расписание на первую неделю:\n\n", "блок первой недели"},
			SecondWeek: []string{"Расписание на вторую неделю:\n\n"},
		},
	}
}

func TestPingHandler(t *testing.T) {
	router := NewRouter(&mockLogger{}, storage.NewMemstorage())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestScheduleHandler(t *testing.T) {
	store := storage.NewMemstorage()
	router := NewRouter(&mockLogger{}, store)

	// До первого обновления расписания ещё нет
	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	artifact := testArtifact()
	require.NoError(t, store.SaveSchedule(artifact))

	req = httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var got models.Artifact
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, *artifact, got)
}

func TestWeekHandler(t *testing.T) {
	store := storage.NewMemstorage()
	require.NoError(t, store.SaveSchedule(testArtifact()))
	router := NewRouter(&mockLogger{}, store)

	tests := []struct {
		name           string
		week           string
		expectedStatus int
		expectedLen    int
	}{
		{"FirstWeek", "first", http.StatusOK, 2},
		{"SecondWeek", "second", http.StatusOK, 1},
		{"UnknownWeek", "third", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/schedule/"+tt.week, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var blocks []string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &blocks))
			assert.Len(t, blocks, tt.expectedLen)
		})
	}
}

func TestWeekHandlerNoSchedule(t *testing.T) {
	router := NewRouter(&mockLogger{}, storage.NewMemstorage())

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/first", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunsHandler(t *testing.T) {
	store := storage.NewMemstorage()
	router := NewRouter(&mockLogger{}, store)

	// Пустая история - пустой список, не ошибка
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	run := &models.Run{
		Id:          uuid.New(),
		Time:        models.GetCurrentTime(),
		Semester:    "osenniy",
		Group:       "332",
		LessonCount: 7,
	}
	require.NoError(t, store.AddRun(run))

	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var runs []models.Run
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, run.Id, runs[0].Id)
	assert.Equal(t, 7, runs[0].LessonCount)
}
