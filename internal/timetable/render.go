package timetable

import (
	"fmt"
	"time"

	"github.com/univbot/schedule-system/internal/models"
)

const (
	firstWeekHeader  = "Расписание на первую неделю:\n\n"
	secondWeekHeader = "Расписание на вторую неделю:\n\n"
	dayOffMessage    = "Выходной! Нет ничего лучше выходных, правда?"

	// Окно рендеринга: ровно семь дней от самой ранней даты недели
	renderWindowDays = 7
)

// Сокращённые русские названия дней недели
var weekdayTranslation = map[string]string{
	"Monday":    "Пн.",
	"Tuesday":   "Вт.",
	"Wednesday": "Ср.",
	"Thursday":  "Чт.",
	"Friday":    "Пт.",
	"Saturday":  "Сб.",
	"Sunday":    "Вс.",
}

// Render превращает занятия двух недель в сохраняемый артефакт
func Render(weeks models.WeekLessons) *models.Artifact {
	return &models.Artifact{
		Lessons: models.ArtifactLessons{
			FirstWeek:  renderWeek(firstWeekHeader, weeks.FirstWeek),
			SecondWeek: renderWeek(secondWeekHeader, weeks.SecondWeek),
		},
	}
}

// renderWeek строит блоки одной недели: заголовок, затем по блоку на каждое
// занятие дня либо один блок-заглушка для дня без занятий
func renderWeek(header string, lessons []models.Lesson) []string {
	blocks := []string{header}
	if len(lessons) == 0 {
		return blocks
	}

	start := lessons[0].Date
	for _, lesson := range lessons[1:] {
		if lesson.Date.Before(start) {
			start = lesson.Date
		}
	}

	for day := 0; day < renderWindowDays; day++ {
		date := start.AddDate(0, 0, day)

		rendered := false
		for _, lesson := range lessons {
			if lesson.Date.Equal(date) {
				blocks = append(blocks, renderLesson(lesson))
				rendered = true
			}
		}
		if !rendered {
			blocks = append(blocks, renderDayOff(date))
		}
	}

	return blocks
}

// shortWeekday переводит день недели даты в сокращённое русское название.
// Неизвестные названия возвращаются как есть.
func shortWeekday(date time.Time) string {
	name := date.Weekday().String()
	if short, ok := weekdayTranslation[name]; ok {
		return short
	}
	return name
}

func renderLesson(lesson models.Lesson) string {
	return fmt.Sprintf("%s | %s\n[%s - %s]\nПредмет: %s.\nПреподаватель: %s\nАудитория: %s\nКорпус: %s\n\n",
		lesson.Date.Format(dateLayout),
		shortWeekday(lesson.Date),
		lesson.StartTime.Format(timeLayout),
		lesson.EndTime.Format(timeLayout),
		lesson.Subject,
		lesson.Teacher,
		lesson.Location,
		lesson.Building,
	)
}

func renderDayOff(date time.Time) string {
	return fmt.Sprintf("%s | %s\n%s\n\n",
		date.Format(dateLayout),
		shortWeekday(date),
		dayOffMessage,
	)
}
