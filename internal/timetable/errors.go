package timetable

import "errors"

// Ошибки конвейера обновления расписания
var (
	ErrRetrieval       = errors.New("ошибка получения страницы расписания")
	ErrStructuralParse = errors.New("неожиданная структура таблицы расписания")
	ErrFieldParse      = errors.New("не удалось разобрать ячейку таблицы")
)
