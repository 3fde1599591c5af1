package formatting

import (
	"fmt"
	"time"
)

var weekdayNames = []string{
	"domingo",
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
}

var monthNames = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// GetWeekdayName возвращает название дня недели по-испански
func GetWeekdayName(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(weekdayNames) {
		return weekdayNames[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца по-испански
func GetMonthName(month time.Month) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return "?"
}

// FormatDisplayDate "2024-05-01" -> "miércoles, 1 de mayo de 2024".
// Строку, которая не разбирается как дата, возвращает как есть
func FormatDisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d de %s de %d",
		GetWeekdayName(t.Weekday()), t.Day(), GetMonthName(t.Month()), t.Year())
}
