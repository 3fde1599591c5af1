package model

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionOutcome string

const (
	SubmissionCreated  SubmissionOutcome = "created"  // 2xx от бэкенда
	SubmissionRejected SubmissionOutcome = "rejected" // не-2xx с сообщением
	SubmissionFailed   SubmissionOutcome = "failed"   // сетевая ошибка
)

// SubmissionRecord запись журнала попыток бронирования
type SubmissionRecord struct {
	ID          uuid.UUID         `json:"id"`
	ChatID      int64             `json:"chat_id"`
	BookingDate string            `json:"booking_date"`
	TimeSlots   []string          `json:"time_slots"`
	Email       string            `json:"email"`
	Outcome     SubmissionOutcome `json:"outcome"`
	HTTPStatus  int               `json:"http_status"`
	Message     string            `json:"message"`
	CreatedAt   time.Time         `json:"created_at"`
}
