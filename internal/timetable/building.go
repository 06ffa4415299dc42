package timetable

// BuildingUnknown возвращается для аудиторий вне известных диапазонов
const BuildingUnknown = "Неизвестный корпус."

type roomRange struct {
	lo, hi int
}

// Диапазоны аудиторий по корпусам, диапазоны не пересекаются
var buildings = []struct {
	name   string
	ranges []roomRange
}{
	{"Главный корпус.", []roomRange{{102, 122}, {202, 239}, {302, 326}, {401, 428}}},
	{"Пристройка главного корпуса.", []roomRange{{132, 139}, {240, 251}, {338, 347}, {433, 438}, {504, 511}}},
	{"Учебный корпус №3.", []roomRange{{291, 296}, {391, 396}}},
	{"Учебный корпус №4.", []roomRange{{4001, 4309}}},
	{"Лабораторный корпус.", []roomRange{{151, 181}, {255, 285}, {351, 382}}},
}

// ClassifyRoom возвращает название корпуса по номеру аудитории
func ClassifyRoom(room int) string {
	for _, b := range buildings {
		for _, r := range b.ranges {
			if room >= r.lo && room <= r.hi {
				return b.name
			}
		}
	}
	return BuildingUnknown
}
