package telegrambot

import (
	"regexp"
	"strings"
	"time"
)

const scheduleDateLayout = "02.01.2006"

// Первая строка блока занятия: "дата | день недели", вторая: "[ЧЧ:ММ - ЧЧ:ММ]"
var lessonTimeRegex = regexp.MustCompile(`^\[(\d{2}:\d{2}) - (\d{2}:\d{2})\]`)

// scheduleByDate возвращает блоки расписания, относящиеся к дате.
// Блоки-заглушки выходных тоже содержат дату и попадают в выборку.
func scheduleByDate(blocks []string, date time.Time) []string {
	target := date.Format(scheduleDateLayout)

	var out []string
	for _, block := range blocks {
		if strings.Contains(block, target) {
			out = append(out, block)
		}
	}
	return out
}

// currentClass ищет блок занятия, идущего прямо сейчас
func currentClass(blocks []string, now time.Time) (string, bool) {
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}

		dateStr := strings.TrimSpace(strings.Split(lines[0], "|")[0])
		date, err := time.Parse(scheduleDateLayout, dateStr)
		if err != nil {
			continue
		}

		m := lessonTimeRegex.FindStringSubmatch(lines[1])
		if m == nil {
			continue
		}

		start, err := time.Parse("15:04", m[1])
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", m[2])
		if err != nil {
			continue
		}

		lessonStart := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
		lessonEnd := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, now.Location())

		if !now.Before(lessonStart) && !now.After(lessonEnd) {
			return block, true
		}
	}
	return "", false
}
