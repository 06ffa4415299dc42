package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/univbot/schedule-system/internal/models"
)

const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"

	// Маркер элективной физкультуры: у этого курса нет аудитории,
	// а в конце ячейки стоит служебный хвост фиксированной длины
	electiveSportsMarker = "Элективные курсы по физической культуре и спорту"
	electiveSuffixRunes  = 12
)

var (
	timeRangeRegex = regexp.MustCompile(`^(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})`)
	roomRegex      = regexp.MustCompile(`(\d+)[а-яА-Я]?`)
)

// BuildLesson собирает занятие из текстов четырёх ячеек таблицы.
// Время и дата обязаны соответствовать своим форматам, иначе весь разбор
// считается неудачным: молча выброшенное занятие испортило бы расписание.
func BuildLesson(timeText, dateText, weekdayText, payload string) (models.Lesson, error) {
	m := timeRangeRegex.FindStringSubmatch(timeText)
	if m == nil {
		return models.Lesson{}, fmt.Errorf("%w: время занятия %q", ErrFieldParse, timeText)
	}

	startTime, err := time.Parse(timeLayout, m[1])
	if err != nil {
		return models.Lesson{}, fmt.Errorf("%w: время начала %q", ErrFieldParse, m[1])
	}
	endTime, err := time.Parse(timeLayout, m[2])
	if err != nil {
		return models.Lesson{}, fmt.Errorf("%w: время окончания %q", ErrFieldParse, m[2])
	}
	if !startTime.Before(endTime) {
		return models.Lesson{}, fmt.Errorf("%w: занятие заканчивается не позже, чем начинается: %q", ErrFieldParse, timeText)
	}

	date, err := time.Parse(dateLayout, dateText)
	if err != nil {
		return models.Lesson{}, fmt.Errorf("%w: дата %q", ErrFieldParse, dateText)
	}

	// Номером аудитории считается последнее число в ячейке: первые числа
	// могут относиться к номеру группы
	building := BuildingUnknown
	if rooms := roomRegex.FindAllStringSubmatch(payload, -1); len(rooms) > 0 {
		room, convErr := strconv.Atoi(rooms[len(rooms)-1][1])
		if convErr == nil {
			building = ClassifyRoom(room)
		}
	}

	if strings.Contains(payload, electiveSportsMarker) {
		runes := []rune(payload)
		if len(runes) > electiveSuffixRunes {
			payload = string(runes[:len(runes)-electiveSuffixRunes])
		}
		building = ""
	}

	fields := Decompose(payload)

	return models.Lesson{
		Date:      date,
		Weekday:   weekdayText,
		StartTime: startTime,
		EndTime:   endTime,
		Payload:   payload,
		Building:  building,
		Group:     fields.Group,
		Subject:   fields.Subject,
		Teacher:   fields.Teacher,
		Location:  fields.Location,
	}, nil
}
