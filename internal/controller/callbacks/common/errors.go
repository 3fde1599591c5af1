package common

import (
	"errors"

	"github.com/Freeeeeet/reservas_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ Error al procesar el mensaje"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Formato de datos no válido"
	case errors.Is(err, service.ErrSubmitInProgress):
		return "⏳ La reserva ya se está enviando"
	case errors.Is(err, service.ErrStalePanel):
		return "🔄 El horario ha cambiado, inténtalo de nuevo"
	case errors.Is(err, service.ErrNoDate):
		return "📅 Primero elige una fecha: /fecha"
	case errors.Is(err, service.ErrHistoryDisabled):
		return "📭 El historial de reservas no está disponible"
	case errors.Is(err, service.ErrSlotNotSelectable):
		return "⛔️ Este horario no está disponible"
	case errors.Is(err, service.ErrSlotNotFound):
		return "❌ Horario no encontrado"
	case errors.Is(err, service.ErrInvalidDate):
		return "❌ Fecha no válida. Usa el formato AAAA-MM-DD, por ejemplo 2024-05-01"
	case errors.Is(err, service.ErrInvalidEmail):
		return "❌ Email no válido. Inténtalo de nuevo:"
	case errors.Is(err, service.ErrInvalidField):
		return "❌ Valor no válido. Inténtalo de nuevo:"
	case errors.Is(err, service.ErrInvalidForm):
		return "📝 Completa tus datos de contacto antes de reservar: /reservar"
	default:
		return "❌ Se produjo un error"
	}
}
