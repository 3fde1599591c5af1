package keyboard

import "github.com/go-telegram/bot/models"

// Callback data кнопок панели
const (
	DatePrev    = "date_prev"
	DateToday   = "date_today"
	DateNext    = "date_next"
	ToggleSlots = "toggle_slots"
	Refresh     = "refresh"
	Submit      = "submit"
	EditForm    = "edit_form"
	Noop        = "noop"
)

// DateNavRow ряд навигации по датам
func DateNavRow() []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️ Anterior", DatePrev),
		Button("📅 Hoy", DateToday),
		Button("Siguiente ▶️", DateNext),
	}
}

// ToggleRow кнопка показа/скрытия списка и обновление
func ToggleRow(toggleLabel string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button(toggleLabel, ToggleSlots),
		Button("🔄 Actualizar", Refresh),
	}
}

// FormRow кнопки формы; во время отправки кнопка "Reservar" неактивна
func FormRow(submitting bool) []models.InlineKeyboardButton {
	submit := Button("📨 Reservar", Submit)
	if submitting {
		submit = Button("⏳ Enviando...", Noop)
	}
	return []models.InlineKeyboardButton{
		Button("📝 Mis datos", EditForm),
		submit,
	}
}

// ReviewRow кнопки под сводкой формы
func ReviewRow() []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("📨 Reservar", Submit),
		Button("✏️ Editar", EditForm),
	}
}
