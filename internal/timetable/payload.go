package timetable

import (
	"regexp"
	"strings"
)

// Fields содержит типизированные поля, извлечённые из текста ячейки занятия
type Fields struct {
	Group    string
	Subject  string
	Teacher  string
	Location string
}

type fieldKind int

const (
	fieldGroup fieldKind = iota
	fieldLocation
	fieldTeacher
)

// extractor описывает одну категорию и её шаблоны в порядке приоритета.
// Порядок категорий важен: каждая удаляет найденную подстроку из текста
// перед тем, как текст достанется следующей.
type extractor struct {
	field    fieldKind
	patterns []*regexp.Regexp
}

var extractors = []extractor{
	{fieldGroup, []*regexp.Regexp{
		regexp.MustCompile(`\d+.*?\s*гр\.`),
	}},
	{fieldLocation, []*regexp.Regexp{
		regexp.MustCompile(`[А-Яа-я]+\./\s*\d+[а-яА-Я]?\s*ауд\.`),
		regexp.MustCompile(`[А-Яа-я]+\s*[А-Яа-я]+\s*/\s*\d+[а-яА-Я]?\s*ауд\.`),
	}},
	{fieldTeacher, []*regexp.Regexp{
		regexp.MustCompile(`[А-Я][а-я]+\s+[А-Я]\.\s*[А-Я]\.`),
	}},
}

// extract возвращает первую найденную подстроку и текст без неё.
// Если ни один шаблон не совпал, текст возвращается без изменений.
func extract(text string, patterns []*regexp.Regexp) (string, string) {
	for _, p := range patterns {
		if m := p.FindString(text); m != "" {
			return m, strings.TrimSpace(strings.Replace(text, m, "", 1))
		}
	}
	return "", text
}

// Decompose разбирает текст ячейки занятия на группу, место, преподавателя
// и предмет. Предмет — это всё, что осталось после остальных категорий.
func Decompose(payload string) Fields {
	var f Fields
	rest := payload
	for _, e := range extractors {
		var match string
		match, rest = extract(rest, e.patterns)
		switch e.field {
		case fieldGroup:
			f.Group = match
		case fieldLocation:
			f.Location = match
		case fieldTeacher:
			f.Teacher = match
		}
	}
	f.Subject = strings.ToUpper(strings.TrimSpace(rest))
	return f
}
