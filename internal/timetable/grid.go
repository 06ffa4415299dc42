package timetable

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/univbot/schedule-system/internal/models"
)

const (
	timeRowSelector = "tr.R3"
	dayRowSelector  = "tr.R4"

	// Первые три ячейки строки времени не относятся к слотам занятий
	slotOffset = 3
)

// daySlot — один занятый слот логической сетки дня. У дня, растянутого на
// две физические строки, в одном слоте могут оказаться два занятия: верхнее
// и нижнее (недели чередуются).
type daySlot struct {
	timeText string
	upper    string
	lower    string
	hasLower bool
}

// dayGrid — логическая сетка одного дня: день недели, дата и занятые слоты
type dayGrid struct {
	weekday string
	date    string
	slots   []daySlot
}

// ParseLessons разбирает HTML-страницу расписания в список занятий
func ParseLessons(data []byte) ([]models.Lesson, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuralParse, err)
	}

	timeRow := doc.Find(timeRowSelector).First()
	if timeRow.Length() == 0 {
		return nil, fmt.Errorf("%w: не найдена строка с временем занятий", ErrStructuralParse)
	}
	timeTexts := cellTexts(timeRow.Find("td"))
	if len(timeTexts) == 0 {
		return nil, fmt.Errorf("%w: в строке времени нет ячеек", ErrStructuralParse)
	}

	dayRows := selections(doc.Find(dayRowSelector))
	if len(dayRows) == 0 {
		return nil, fmt.Errorf("%w: не найдены строки с днями недели", ErrStructuralParse)
	}

	var lessons []models.Lesson
	for _, row := range dayRows {
		grid, err := buildDayGrid(row, timeTexts)
		if err != nil {
			return nil, err
		}

		for _, slot := range grid.slots {
			lesson, err := BuildLesson(slot.timeText, grid.date, grid.weekday, slot.upper)
			if err != nil {
				return nil, err
			}
			lessons = append(lessons, lesson)

			if !slot.hasLower {
				continue
			}
			lesson, err = BuildLesson(slot.timeText, grid.date, grid.weekday, slot.lower)
			if err != nil {
				return nil, err
			}
			lessons = append(lessons, lesson)
		}
	}

	return lessons, nil
}

// buildDayGrid собирает логическую сетку одного дня за один проход по строке.
// Занятие из нижней физической строки сразу записывается в свой слот,
// без сквозных счётчиков в обходе.
func buildDayGrid(row *goquery.Selection, timeTexts []string) (*dayGrid, error) {
	cells := selections(row.Find("td"))

	// Ячейка с номером недели растянута на весь блок и не несёт данных дня
	if len(cells) > 0 && rowspan(cells[0]) > 2 {
		cells = cells[1:]
	}

	if len(cells) < 2 {
		return nil, fmt.Errorf("%w: в строке дня меньше двух ячеек", ErrStructuralParse)
	}

	weekdayCell, dateCell, lessonCells := cells[0], cells[1], cells[2:]

	span := rowspan(weekdayCell)
	if span != 1 && span != 2 {
		return nil, fmt.Errorf("%w: день недели занимает %d строк", ErrStructuralParse, span)
	}

	grid := &dayGrid{
		weekday: cellText(weekdayCell),
		date:    cellText(dateCell),
	}

	// Нижняя половина дня лежит в следующей физической строке таблицы;
	// её ячейки разбираются по порядку по мере появления "переполнений"
	var lowerCells []string
	lowerIdx := 0
	if span == 2 {
		lowerCells = cellTexts(row.Next().Find("td"))
	}

	for i, lessonCell := range lessonCells {
		timeIdx := slotOffset + i
		if timeIdx >= len(timeTexts) {
			break
		}
		timeText := timeTexts[timeIdx]
		upper := cellText(lessonCell)
		if timeText == "" || upper == "" {
			continue
		}

		slot := daySlot{timeText: timeText, upper: upper}

		// Ячейка занятия на одну строку внутри дня на две строки означает,
		// что нижнюю половину слота занимает занятие другой недели
		if span == 2 && rowspan(lessonCell) == 1 {
			if lowerIdx >= len(lowerCells) {
				return nil, fmt.Errorf("%w: нижняя строка дня %s короче ожидаемой", ErrStructuralParse, grid.date)
			}
			slot.lower = lowerCells[lowerIdx]
			slot.hasLower = true
			lowerIdx++
		}

		grid.slots = append(grid.slots, slot)
	}

	return grid, nil
}

func selections(s *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	s.Each(func(_ int, sel *goquery.Selection) {
		out = append(out, sel)
	})
	return out
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func cellTexts(s *goquery.Selection) []string {
	var out []string
	s.Each(func(_ int, sel *goquery.Selection) {
		out = append(out, cellText(sel))
	})
	return out
}

func rowspan(s *goquery.Selection) int {
	v, ok := s.Attr("rowspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 1
	}
	return n
}
