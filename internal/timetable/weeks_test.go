package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univbot/schedule-system/internal/models"
)

func mustLesson(t *testing.T, timeText, dateText, subject string) models.Lesson {
	t.Helper()
	lesson, err := BuildLesson(timeText, dateText, "Пн", subject)
	require.NoError(t, err)
	return lesson
}

func TestSplitByWeek(t *testing.T) {
	// 01.09.2025 и 02.09.2025 - ISO-неделя 36 (чётная, вторая),
	// 08.09.2025 - ISO-неделя 37 (нечётная, первая)
	lessons := []models.Lesson{
		mustLesson(t, "08:30 - 10:00", "01.09.2025", "Математика"),
		mustLesson(t, "08:30 - 10:00", "08.09.2025", "Физика"),
		mustLesson(t, "10:15 - 11:45", "02.09.2025", "Химия"),
	}

	weeks := SplitByWeek(lessons)

	require.Len(t, weeks.FirstWeek, 1)
	require.Len(t, weeks.SecondWeek, 2)
	assert.Equal(t, "ФИЗИКА", weeks.FirstWeek[0].Subject)
	assert.Equal(t, "МАТЕМАТИКА", weeks.SecondWeek[0].Subject)
	assert.Equal(t, "ХИМИЯ", weeks.SecondWeek[1].Subject)
}

// Разбиение тотально: каждое занятие попадает ровно в одну корзину
func TestSplitByWeekPartition(t *testing.T) {
	var lessons []models.Lesson
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 14; day++ {
		lessons = append(lessons, mustLesson(t, "08:30 - 10:00", date.AddDate(0, 0, day).Format(dateLayout), "Предмет"))
	}

	weeks := SplitByWeek(lessons)

	assert.Equal(t, len(lessons), len(weeks.FirstWeek)+len(weeks.SecondWeek))
	for _, lesson := range weeks.FirstWeek {
		_, week := lesson.Date.ISOWeek()
		assert.Equal(t, 1, week%2)
	}
	for _, lesson := range weeks.SecondWeek {
		_, week := lesson.Date.ISOWeek()
		assert.Equal(t, 0, week%2)
	}
}

func TestSplitByWeekSorting(t *testing.T) {
	lessons := []models.Lesson{
		mustLesson(t, "12:00 - 13:30", "02.09.2025", "Поздняя пара"),
		mustLesson(t, "08:30 - 10:00", "02.09.2025", "Ранняя пара"),
		mustLesson(t, "08:30 - 10:00", "01.09.2025", "Другой день"),
	}

	weeks := SplitByWeek(lessons)
	require.Len(t, weeks.SecondWeek, 3)

	assert.Equal(t, "ДРУГОЙ ДЕНЬ", weeks.SecondWeek[0].Subject)
	assert.Equal(t, "РАННЯЯ ПАРА", weeks.SecondWeek[1].Subject)
	assert.Equal(t, "ПОЗДНЯЯ ПАРА", weeks.SecondWeek[2].Subject)
}

// При равных дате и времени сохраняется порядок обнаружения
func TestSplitByWeekStableOrder(t *testing.T) {
	lessons := []models.Lesson{
		mustLesson(t, "08:30 - 10:00", "01.09.2025", "Первое занятие"),
		mustLesson(t, "08:30 - 10:00", "01.09.2025", "Второе занятие"),
	}

	weeks := SplitByWeek(lessons)
	require.Len(t, weeks.SecondWeek, 2)

	assert.Equal(t, "ПЕРВОЕ ЗАНЯТИЕ", weeks.SecondWeek[0].Subject)
	assert.Equal(t, "ВТОРОЕ ЗАНЯТИЕ", weeks.SecondWeek[1].Subject)
}

// Повторное разбиение того же списка даёт тот же результат
func TestSplitByWeekDeterministic(t *testing.T) {
	lessons := []models.Lesson{
		mustLesson(t, "08:30 - 10:00", "01.09.2025", "Математика"),
		mustLesson(t, "10:15 - 11:45", "08.09.2025", "Физика"),
	}

	first := SplitByWeek(lessons)
	second := SplitByWeek(lessons)
	assert.Equal(t, first, second)
}
