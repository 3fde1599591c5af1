package model

import "time"

// DialogStep текущий шаг диалога заполнения формы
type DialogStep string

const (
	StepNone     DialogStep = "" // Нет активного диалога
	StepDate     DialogStep = "entering_date"
	StepNombre   DialogStep = "entering_nombre"
	StepEmail    DialogStep = "entering_email"
	StepTelefono DialogStep = "entering_telefono"
	StepMensaje  DialogStep = "entering_mensaje"
	StepReview   DialogStep = "reviewing_form"
)

// Session состояние формы бронирования одного чата
type Session struct {
	ChatID       int64       `json:"chat_id"`
	Date         string      `json:"date"` // YYYY-MM-DD
	Slots        []TimeSlot  `json:"slots"`
	Selection    []string    `json:"selection"`
	SlotsVisible bool        `json:"slots_visible"`
	Form         ContactForm `json:"form"`
	Step         DialogStep  `json:"step"`
	Submitting   bool        `json:"submitting"`
	Loading      bool        `json:"loading"`
	Generation   uint64      `json:"generation"` // номер последнего запроса слотов
	MessageID    int         `json:"message_id"` // сообщение-панель, которое редактируется
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewSession создаёт пустую сессию чата
func NewSession(chatID int64) *Session {
	return &Session{
		ChatID:       chatID,
		SlotsVisible: true,
	}
}

// Clone глубокая копия сессии
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Slots = append([]TimeSlot(nil), s.Slots...)
	c.Selection = append([]string(nil), s.Selection...)
	return &c
}
