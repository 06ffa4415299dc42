package models

import (
	"time"

	"github.com/google/uuid"
)

// Lesson представляет одно занятие, построенное из одной ячейки таблицы
type Lesson struct {
	Date      time.Time `json:"date"`
	Weekday   string    `json:"weekday"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Payload   string    `json:"payload"`
	Building  string    `json:"building"`
	Group     string    `json:"group"`
	Subject   string    `json:"subject"`
	Teacher   string    `json:"teacher"`
	Location  string    `json:"location"`
}

// WeekLessons содержит занятия, разбитые по чётности недели
type WeekLessons struct {
	FirstWeek  []Lesson
	SecondWeek []Lesson
}

// ArtifactLessons содержит отрендеренные текстовые блоки по неделям
type ArtifactLessons struct {
	FirstWeek  []string `json:"first_week"`
	SecondWeek []string `json:"second_week"`
}

// Artifact представляет сохраняемое расписание
type Artifact struct {
	Lessons ArtifactLessons `json:"lessons"`
}

// Run представляет одно успешное обновление расписания
type Run struct {
	Id          uuid.UUID `json:"id"`
	Time        time.Time `json:"time"`
	Semester    string    `json:"semester"`
	Group       string    `json:"group"`
	LessonCount int       `json:"lesson_count"`
}

// GetCurrentTime возвращает текущее время
func GetCurrentTime() time.Time {
	return time.Now()
}
