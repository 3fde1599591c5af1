package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/reservas_bot/internal/booking"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	// Кнопок слотов в одном ряду
	slotsPerRow = 2

	LoadingText    = "⏳ Cargando..."
	EmptySlotsText = "No hay horarios disponibles para esta fecha."
	HiddenText     = "🙈 Horario oculto"
	NoDateText     = "📅 Elige una fecha con /fecha o los botones de abajo."
)

// RenderPanel переводит план отрисовки в текст и клавиатуру сообщения-панели.
// Каждый вызов строит клавиатуру заново: кнопки прошлого рендера не переиспользуются
func RenderPanel(plan booking.Plan) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	kb := keyboard.NewBuilder()

	if plan.Date == "" {
		sb.WriteString(NoDateText)
	} else {
		fmt.Fprintf(&sb, "📅 <b>%s</b>\n\n", formatting.FormatDisplayDate(plan.Date))

		switch {
		case plan.Loading:
			sb.WriteString(LoadingText)
		case !plan.SlotsVisible:
			sb.WriteString(HiddenText)
		case plan.Empty():
			sb.WriteString(EmptySlotsText)
		default:
			sb.WriteString(legend())
			kb.Grid(slotsPerRow, slotButtons(plan)...)
		}

		sb.WriteString("\n\n")
		sb.WriteString(selectedSummary(plan.Selected))
	}

	if plan.Submitting {
		sb.WriteString("\n\n⏳ Enviando la reserva...")
	}

	kb.Row(keyboard.DateNavRow()...)
	kb.Row(keyboard.ToggleRow(plan.ToggleLabel)...)
	kb.Row(keyboard.FormRow(plan.Submitting)...)

	return sb.String(), kb.Build()
}

func legend() string {
	parts := make([]string, 0, 3)
	for _, kind := range []booking.SlotKind{booking.SlotSelectable, booking.SlotReserved, booking.SlotUnavailable} {
		d := formatting.GetSlotDisplay(kind)
		parts = append(parts, d.Emoji+" "+strings.ToLower(d.Text))
	}
	return strings.Join(parts, " · ")
}

func slotButtons(plan booking.Plan) []models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(plan.Slots))
	for _, view := range plan.Slots {
		data := keyboard.Noop
		if !view.Disabled() {
			data = SlotCallback(plan.Generation, view.Index)
		}
		buttons = append(buttons, keyboard.Button(formatting.SlotButtonText(view), data))
	}
	return buttons
}

// selectedSummary список выбранных слотов под клавиатурой
func selectedSummary(selected []string) string {
	if len(selected) == 0 {
		return "Ningún horario seleccionado"
	}
	return fmt.Sprintf("%s %s: %s",
		formatting.SelectedEmoji,
		formatting.PluralizeSlots(len(selected)),
		escape(strings.Join(selected, ", ")))
}

// FormSummary сводка формы перед отправкой
func FormSummary(plan booking.Plan) string {
	f := plan.Form
	mensaje := f.Mensaje
	if mensaje == "" {
		mensaje = "-"
	}

	text := fmt.Sprintf(
		"📋 <b>Resumen de la reserva</b>\n\n"+
			"📅 Fecha: %s\n"+
			"🕒 Horarios: %s\n"+
			"👤 Nombre: %s\n"+
			"✉️ Email: %s\n"+
			"📞 Teléfono: %s\n"+
			"💬 Mensaje: %s",
		formatting.FormatDisplayDate(plan.Date),
		escape(joinOrDash(plan.Selected)),
		escape(f.Nombre),
		escape(f.Email),
		escape(f.Telefono),
		escape(mensaje),
	)

	if len(plan.Selected) == 0 {
		text += "\n\n⚠️ No has seleccionado ningún horario."
	}
	return text
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return htmlEscaper.Replace(s)
}

// SendPanel отправляет новое сообщение-панель и запоминает его id
func SendPanel(ctx context.Context, m callbacktypes.Messenger, h *callbacktypes.Handler, chatID int64, plan booking.Plan) {
	text, markup := RenderPanel(plan)
	msg, err := m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.Logger.Error("Failed to send panel", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	if msg == nil {
		return
	}
	if err := h.BookingService.SetMessageID(ctx, chatID, msg.ID); err != nil {
		h.Logger.Error("Failed to remember panel message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// EditPanel перерисовывает существующую панель
func EditPanel(ctx context.Context, m callbacktypes.Messenger, h *callbacktypes.Handler, msg *models.Message, plan booking.Plan) {
	text, markup := RenderPanel(plan)
	_, err := m.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		// "message is not modified" сюда тоже попадает
		h.Logger.Debug("Failed to edit panel",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err))
	}
}

// LoadingPlan план панели на время загрузки слотов даты
func LoadingPlan(current booking.Plan, date string) booking.Plan {
	return booking.Plan{
		Date:         date,
		SlotsVisible: current.SlotsVisible,
		ToggleLabel:  current.ToggleLabel,
		Loading:      true,
		Submitting:   current.Submitting,
		Form:         current.Form,
	}
}

// FormComplete все обязательные поля формы заполнены
func FormComplete(f model.ContactForm) bool {
	return f.Nombre != "" && f.Email != "" && f.Telefono != ""
}
