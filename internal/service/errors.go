package service

import (
	"errors"

	"github.com/Freeeeeet/reservas_bot/internal/booking"
)

var (
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrStalePanel       = errors.New("panel is out of date")
	ErrNoDate           = errors.New("no date selected")
	ErrHistoryDisabled  = errors.New("submission log is not configured")

	ErrSlotNotFound      = booking.ErrSlotNotFound
	ErrSlotNotSelectable = booking.ErrSlotNotSelectable
	ErrInvalidDate       = booking.ErrInvalidDate
	ErrInvalidEmail      = booking.ErrInvalidEmail
	ErrInvalidField      = booking.ErrInvalidField
	ErrInvalidForm       = booking.ErrInvalidForm
)

// Тексты для пользователя, совпадают с сообщениями веб-формы
const (
	MsgReservationCreated  = "Reserva creada exitosamente"
	MsgReservationFallback = "Error al crear la reserva"
	MsgRequestFailed       = "Error en la solicitud."
)
