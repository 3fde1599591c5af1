package model

// TimeSlot интервал, который бэкенд отдаёт для выбранной даты
type TimeSlot struct {
	TimeSlot   string `json:"timeSlot"`   // например "09:00-10:00"
	Selectable bool   `json:"selectable"` // можно ли выбрать слот
	Reserved   bool   `json:"reserved"`   // занят другой бронью
}

// SlotsResponse ответ GET /api/availableSlots
type SlotsResponse struct {
	Slots []TimeSlot `json:"slots"`
}

// APIMessage тело ответа бэкенда с ошибкой
type APIMessage struct {
	Message string `json:"message"`
}
