package timetable

import (
	"context"
	"encoding/json"
	"testing"

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

// stubFetcher отдаёт заранее заданную страницу либо ошибку
type stubFetcher struct {
	data []byte
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *stubFetcher) SourceURL() string {
	return "https://timetable.example.ru/osenniy/332.htm"
}

func (f *stubFetcher) Target() (string, string) {
	return "osenniy", "332"
}

func TestPipelineRun(t *testing.T) {
	store := storage.NewMemstorage()
	pipeline := NewPipeline(&stubFetcher{data: []byte(timetablePage)}, store, &mockLogger{})

	artifact, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, artifact)

	// Артефакт сохранён целиком
	saved, err := store.GetSchedule()
	require.NoError(t, err)
	assert.Equal(t, artifact, saved)

	// История обновлений зафиксировала запуск
	run, err := store.GetLastRun()
	require.NoError(t, err)
	assert.Equal(t, "osenniy", run.Semester)
	assert.Equal(t, "332", run.Group)
	assert.Equal(t, 4, run.LessonCount)
}

// Неудачный цикл не должен трогать хранилище
func TestPipelineRunFetchErrorLeavesStoreUntouched(t *testing.T) {
	store := storage.NewMemstorage()
	pipeline := NewPipeline(&stubFetcher{err: ErrRetrieval}, store, &mockLogger{})

	_, err := pipeline.Run(context.Background())
	assert.ErrorIs(t, err, ErrRetrieval)

	_, err = store.GetSchedule()
	assert.ErrorIs(t, err, storage.ErrScheduleNotFound)
	_, err = store.GetLastRun()
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
}

func TestPipelineRunParseErrorLeavesStoreUntouched(t *testing.T) {
	store := storage.NewMemstorage()
	pipeline := NewPipeline(&stubFetcher{data: []byte("<html><body>пусто</body></html>")}, store, &mockLogger{})

	_, err := pipeline.Run(context.Background())
	assert.ErrorIs(t, err, ErrStructuralParse)

	_, err = store.GetSchedule()
	assert.ErrorIs(t, err, storage.ErrScheduleNotFound)
}

// Артефакт переживает сериализацию без потерь
func TestArtifactRoundTrip(t *testing.T) {
	pipeline := NewPipeline(&stubFetcher{data: []byte(timetablePage)}, storage.NewMemstorage(), &mockLogger{})

	artifact, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	data, err := json.MarshalIndent(artifact, "", "    ")
	require.NoError(t, err)

	var restored models.Artifact
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *artifact, restored)
}
