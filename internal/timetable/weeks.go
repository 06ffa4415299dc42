package timetable

import (
	"sort"

	"github.com/univbot/schedule-system/internal/models"
)

// SplitByWeek раскладывает занятия на две недели по чётности номера
// ISO-недели даты: нечётная неделя — первая, чётная — вторая. Каждая
// корзина сортируется по дате и времени начала, порядок обнаружения
// сохраняется при равных ключах.
func SplitByWeek(lessons []models.Lesson) models.WeekLessons {
	var weeks models.WeekLessons

	for _, lesson := range lessons {
		_, week := lesson.Date.ISOWeek()
		if week%2 == 1 {
			weeks.FirstWeek = append(weeks.FirstWeek, lesson)
		} else {
			weeks.SecondWeek = append(weeks.SecondWeek, lesson)
		}
	}

	sortLessons(weeks.FirstWeek)
	sortLessons(weeks.SecondWeek)

	return weeks
}

func sortLessons(lessons []models.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		if !lessons[i].Date.Equal(lessons[j].Date) {
			return lessons[i].Date.Before(lessons[j].Date)
		}
		return lessons[i].StartTime.Before(lessons[j].StartTime)
	})
}
