package formatting

import (
	"github.com/Freeeeeet/reservas_bot/internal/booking"
	"github.com/Freeeeeet/reservas_bot/internal/model"
)

// SlotDisplay представляет отображение состояния слота
type SlotDisplay struct {
	Emoji string
	Text  string
}

// Маркер выбранного слота
const SelectedEmoji = "✅"

// GetSlotDisplay возвращает emoji и текст для состояния слота
func GetSlotDisplay(kind booking.SlotKind) SlotDisplay {
	displays := map[booking.SlotKind]SlotDisplay{
		booking.SlotSelectable:  {"🟢", "Libre"},
		booking.SlotReserved:    {"🔴", "Reservado"},
		booking.SlotUnavailable: {"⚫️", "No disponible"},
	}

	if display, ok := displays[kind]; ok {
		return display
	}

	return SlotDisplay{"❓", "Desconocido"}
}

// SlotButtonText подпись кнопки слота
func SlotButtonText(view booking.SlotView) string {
	if view.Selected {
		return SelectedEmoji + " " + view.Label
	}
	return GetSlotDisplay(view.Kind).Emoji + " " + view.Label
}

// GetOutcomeDisplay emoji и текст для итога попытки бронирования
func GetOutcomeDisplay(outcome model.SubmissionOutcome) SlotDisplay {
	switch outcome {
	case model.SubmissionCreated:
		return SlotDisplay{"✅", "Creada"}
	case model.SubmissionRejected:
		return SlotDisplay{"⛔️", "Rechazada"}
	case model.SubmissionFailed:
		return SlotDisplay{"⚠️", "Error de conexión"}
	default:
		return SlotDisplay{"❓", "Desconocido"}
	}
}
