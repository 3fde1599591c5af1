package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/Freeeeeet/reservas_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: сегодняшняя дата и новая панель
func (h *Handlers) HandleStart(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	result, err := h.bookingService.Initialize(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to initialize booking form", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, m, chatID,
		"👋 ¡Hola! Elige uno o varios horarios, completa tus datos con /reservar y pulsa «Reservar».\n\n"+
			"Ayuda: /ayuda")
	common.SendPanel(ctx, m, h.panel, chatID, result.Plan)
}

// HandleHelp обрабатывает команду /ayuda
func (h *Handlers) HandleHelp(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Comandos:\n\n" +
		"/start - Empezar una reserva para hoy\n" +
		"/fecha - Elegir otra fecha (por ejemplo /fecha 2024-05-01)\n" +
		"/horario - Volver a cargar los horarios\n" +
		"/imagen - Imagen con los horarios del día\n" +
		"/reservar - Introducir los datos de contacto\n" +
		"/cancelar - Cancelar la operación actual\n" +
		"/historial - Tus últimas reservas\n" +
		"/ayuda - Mostrar esta ayuda\n\n" +
		"🟢 libre · 🔴 reservado · ⚫️ no disponible · ✅ seleccionado"

	h.sendMessage(ctx, m, update.Message.Chat.ID, helpText)
}

// HandleDate обрабатывает команду /fecha: с аргументом сразу меняет дату, без него спрашивает
func (h *Handlers) HandleDate(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if arg := commandArg(update.Message.Text); arg != "" {
		h.applyDate(ctx, m, chatID, arg)
		return
	}

	if err := h.bookingService.SetStep(ctx, chatID, model.StepDate); err != nil {
		h.logger.Error("Failed to set dialog step", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}
	h.sendMessage(ctx, m, chatID, promptDate)
}

// applyDate перерисовывает слоты на введённую дату новой панелью
func (h *Handlers) applyDate(ctx context.Context, m Messenger, chatID int64, raw string) {
	result, err := h.bookingService.SetDate(ctx, chatID, raw)
	if err != nil {
		h.logger.Info("Date rejected",
			zap.Int64("chat_id", chatID),
			zap.String("date", raw),
			zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}
	if err := h.bookingService.SetStep(ctx, chatID, model.StepNone); err != nil {
		h.logger.Error("Failed to reset dialog step", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	common.SendPanel(ctx, m, h.panel, chatID, result.Plan)
}

// HandleSchedule обрабатывает команду /horario: перезагрузка слотов текущей даты
func (h *Handlers) HandleSchedule(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	result, err := h.bookingService.Refresh(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to refresh slots", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}
	common.SendPanel(ctx, m, h.panel, chatID, result.Plan)
}

// HandleImage обрабатывает команду /imagen: PNG со слотами отображаемой даты
func (h *Handlers) HandleImage(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	plan, err := h.bookingService.Plan(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load plan", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}
	if plan.Date == "" {
		h.sendMessage(ctx, m, chatID, common.NoDateText)
		return
	}

	imageData, err := common.GenerateDayImage(plan.Date, plan.Slots)
	if err != nil {
		h.logger.Error("Failed to generate day image",
			zap.Int64("chat_id", chatID),
			zap.String("date", plan.Date),
			zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	_, err = m.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: fmt.Sprintf("horario-%s.png", plan.Date), Data: bytes.NewReader(imageData)},
		Caption: "📅 " + formatting.FormatDisplayDate(plan.Date),
	})
	if err != nil {
		h.logger.Error("Failed to send day image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleCancel обрабатывает команду /cancelar - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, err := h.bookingService.Session(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	if session.Step == model.StepNone {
		h.sendMessage(ctx, m, chatID, "❌ No hay ninguna operación activa.")
		return
	}

	if err := h.bookingService.SetStep(ctx, chatID, model.StepNone); err != nil {
		h.logger.Error("Failed to reset dialog step", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, m, chatID, "✅ Operación cancelada.\n\nUsa /ayuda para ver los comandos.")
}

// HandleHistory обрабатывает команду /historial: последние попытки бронирования
func (h *Handlers) HandleHistory(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	records, err := h.bookingService.History(ctx, chatID, historyLimit)
	if err != nil {
		if !errors.Is(err, service.ErrHistoryDisabled) {
			h.logger.Error("Failed to load submission history", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}
	if len(records) == 0 {
		h.sendMessage(ctx, m, chatID, "📭 Todavía no has enviado ninguna reserva.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Tus últimas reservas:\n")
	for _, rec := range records {
		display := formatting.GetOutcomeDisplay(rec.Outcome)
		fmt.Fprintf(&sb, "\n%s %s · %s\n", display.Emoji, rec.BookingDate, strings.Join(rec.TimeSlots, ", "))
		fmt.Fprintf(&sb, "   %s", display.Text)
		if rec.Message != "" {
			fmt.Fprintf(&sb, ": %s", rec.Message)
		}
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, m, chatID, sb.String())
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	session, err := h.bookingService.Session(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("chat_id", chatID),
		zap.String("step", string(session.Step)))

	switch session.Step {
	case model.StepNone:
		// Если нет активного диалога, игнорируем
		return
	case model.StepDate:
		h.applyDate(ctx, m, chatID, update.Message.Text)
	case model.StepNombre, model.StepEmail, model.StepTelefono, model.StepMensaje:
		h.handleFormStep(ctx, m, chatID, update.Message.Text)
	case model.StepReview:
		h.sendMessage(ctx, m, chatID, "Pulsa «Reservar» o «Editar» en el resumen. Para cancelar usa /cancelar")
	default:
		h.logger.Warn("Unknown step", zap.String("step", string(session.Step)))
	}
}
