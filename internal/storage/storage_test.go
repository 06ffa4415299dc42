package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univbot/schedule-system/internal/models"
)

func testArtifact() *models.Artifact {
	return &models.Artifact{
		Lessons: models.ArtifactLessons{
			FirstWeek:  []string{"Расписание на первую неделю:\n\n", "08.09.2025 | Пн.\nВыходной! Нет ничего лучше выходных, правда?\n\n"},
			SecondWeek: []string{"Расписание на вторую неделю:\n\n"},
		},
	}
}

func testRun(minutesAgo int) *models.Run {
	return &models.Run{
		Id:          uuid.New(),
		Time:        time.Now().Add(-time.Duration(minutesAgo) * time.Minute),
		Semester:    "osenniy",
		Group:       "332",
		LessonCount: 12,
	}
}

// Общие свойства всех реализаций Storage
func TestStorageImplementations(t *testing.T) {
	implementations := map[string]func(t *testing.T) Storage{
		"Memstorage": func(t *testing.T) Storage {
			return NewMemstorage()
		},
		"Filestorage": func(t *testing.T) Storage {
			fs, err := NewFilestorage(t.TempDir())
			require.NoError(t, err)
			return fs
		},
	}

	for name, newStorage := range implementations {
		t.Run(name+"_Schedule", func(t *testing.T) {
			store := newStorage(t)

			_, err := store.GetSchedule()
			assert.ErrorIs(t, err, ErrScheduleNotFound)

			artifact := testArtifact()
			require.NoError(t, store.SaveSchedule(artifact))

			saved, err := store.GetSchedule()
			require.NoError(t, err)
			assert.Equal(t, artifact, saved)

			// Повторное сохранение заменяет артефакт целиком
			replacement := &models.Artifact{}
			require.NoError(t, store.SaveSchedule(replacement))
			saved, err = store.GetSchedule()
			require.NoError(t, err)
			assert.Equal(t, replacement, saved)
		})

		t.Run(name+"_Runs", func(t *testing.T) {
			store := newStorage(t)

			_, err := store.GetLastRun()
			assert.ErrorIs(t, err, ErrRunNotFound)
			_, err = store.GetRun(uuid.New())
			assert.ErrorIs(t, err, ErrRunNotFound)

			older := testRun(10)
			newer := testRun(1)
			require.NoError(t, store.AddRun(older))
			require.NoError(t, store.AddRun(newer))

			run, err := store.GetRun(older.Id)
			require.NoError(t, err)
			assert.Equal(t, older.Id, run.Id)

			// История отсортирована по времени, последний запуск - самый свежий
			runs, err := store.GetRuns()
			require.NoError(t, err)
			require.Len(t, runs, 2)
			assert.Equal(t, older.Id, runs[0].Id)
			assert.Equal(t, newer.Id, runs[1].Id)

			last, err := store.GetLastRun()
			require.NoError(t, err)
			assert.Equal(t, newer.Id, last.Id)
		})
	}
}

// Файл расписания пишется под известным именем с отступом в четыре пробела
func TestFilestorageScheduleFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFilestorage(dir)
	require.NoError(t, err)

	artifact := testArtifact()
	require.NoError(t, fs.SaveSchedule(artifact))

	path := filepath.Join(dir, ScheduleFileName)
	assert.Equal(t, path, fs.SchedulePath())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n    \"lessons\""), "ожидается отступ в четыре пробела")
	assert.Contains(t, string(data), "first_week")
	assert.Contains(t, string(data), "second_week")

	// Файл читается обратно без потерь
	var restored models.Artifact
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *artifact, restored)
}

// Хранилище восстанавливает состояние из файлов при перезапуске
func TestFilestorageReload(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFilestorage(dir)
	require.NoError(t, err)

	artifact := testArtifact()
	run := testRun(5)
	require.NoError(t, first.SaveSchedule(artifact))
	require.NoError(t, first.AddRun(run))

	second, err := NewFilestorage(dir)
	require.NoError(t, err)

	restored, err := second.GetSchedule()
	require.NoError(t, err)
	assert.Equal(t, artifact, restored)

	restoredRun, err := second.GetRun(run.Id)
	require.NoError(t, err)
	assert.Equal(t, run.Id, restoredRun.Id)
	assert.Equal(t, run.Semester, restoredRun.Semester)
	assert.Equal(t, run.Group, restoredRun.Group)
	assert.Equal(t, run.LessonCount, restoredRun.LessonCount)
	assert.True(t, run.Time.Equal(restoredRun.Time))
}
