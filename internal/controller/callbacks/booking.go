package callbacks

import (
	"context"
	"errors"

	"github.com/Freeeeeet/reservas_bot/internal/booking"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/Freeeeeet/reservas_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSlot переключает выбор слота; нажатие в устаревшей панели перерисовывает её
func HandleSlot(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler) {
	chatID := msg.Chat.ID

	generation, index, err := common.ParseSlotCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse slot callback", zap.Error(err), zap.String("data", callback.Data))
		common.AnswerCallbackAlert(ctx, m, callback.ID, common.ErrorMessage(err))
		return
	}

	plan, selected, err := h.BookingService.ToggleSlotAt(ctx, chatID, generation, index)
	if err != nil {
		h.Logger.Info("Slot toggle rejected",
			zap.Int64("chat_id", chatID),
			zap.Uint64("generation", generation),
			zap.Int("index", index),
			zap.Error(err))
		common.AnswerCallback(ctx, m, callback.ID, common.ErrorMessage(err))

		if errors.Is(err, service.ErrStalePanel) {
			if current, planErr := h.BookingService.Plan(ctx, chatID); planErr == nil {
				common.EditPanel(ctx, m, h, msg, current)
			}
		}
		return
	}

	answer := "Horario deseleccionado"
	if selected {
		answer = "✅ Horario seleccionado"
	}
	common.AnswerCallback(ctx, m, callback.ID, answer)
	common.EditPanel(ctx, m, h, msg, plan)
}

// HandleToggleSlots показывает или скрывает список слотов
func HandleToggleSlots(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler) {
	plan, err := h.BookingService.ToggleVisibility(ctx, msg.Chat.ID)
	if err != nil {
		h.Logger.Error("Failed to toggle slots visibility", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, m, callback.ID, common.ErrorMessage(err))
		return
	}
	common.AnswerCallback(ctx, m, callback.ID, "")
	common.EditPanel(ctx, m, h, msg, plan)
}

// HandleShiftDate переходит на соседний день
func HandleShiftDate(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler, days int) {
	chatID := msg.Chat.ID

	session, err := h.BookingService.Session(ctx, chatID)
	if err != nil {
		h.Logger.Error("Failed to load session", zap.Int64("chat_id", chatID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, m, callback.ID, common.ErrorMessage(err))
		return
	}

	date := session.Date
	if date == "" {
		date = h.BookingService.Today()
	} else if date, err = booking.ShiftDate(date, days); err != nil {
		common.AnswerCallbackAlert(ctx, m, callback.ID, common.ErrorMessage(err))
		return
	}

	renderDate(ctx, m, callback, msg, h, date)
}

// HandleToday возвращает панель на сегодняшнюю дату
func HandleToday(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler) {
	renderDate(ctx, m, callback, msg, h, h.BookingService.Today())
}

// HandleRefresh перезагружает слоты текущей даты
func HandleRefresh(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler) {
	session, err := h.BookingService.Session(ctx, msg.Chat.ID)
	if err != nil {
		h.Logger.Error("Failed to load session", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, m, callback.ID, common.ErrorMessage(err))
		return
	}

	date := session.Date
	if date == "" {
		date = h.BookingService.Today()
	}
	renderDate(ctx, m, callback, msg, h, date)
}

// renderDate показывает "Cargando..." и перерисовывает панель по ответу бэкенда.
// Устаревший ответ панель не трогает: её нарисует более новый рендер
func renderDate(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler, date string) {
	chatID := msg.Chat.ID
	common.AnswerCallback(ctx, m, callback.ID, "")

	if current, err := h.BookingService.Plan(ctx, chatID); err == nil {
		common.EditPanel(ctx, m, h, msg, common.LoadingPlan(current, date))
	}

	result, err := h.BookingService.RenderSlots(ctx, chatID, date)
	if err != nil {
		h.Logger.Error("Failed to render slots",
			zap.Int64("chat_id", chatID),
			zap.String("date", date),
			zap.Error(err))
		return
	}
	if result.Stale {
		return
	}
	common.EditPanel(ctx, m, h, msg, result.Plan)
}

// HandleSubmit отправляет бронь и показывает ответ бэкенда во всплывающем окне
func HandleSubmit(ctx context.Context, m Messenger, callback *models.CallbackQuery, msg *models.Message, h *callbacktypes.Handler) {
	chatID := msg.Chat.ID
	panel := panelMessage(ctx, h, msg)

	current, err := h.BookingService.Plan(ctx, chatID)
	if err != nil {
		h.Logger.Error("Failed to load plan", zap.Int64("chat_id", chatID), zap.Error(err))
		answerAlert(ctx, m, h, callback.ID, common.ErrorMessage(err))
		return
	}
	if !common.FormComplete(current.Form) {
		answerAlert(ctx, m, h, callback.ID, common.ErrorMessage(service.ErrInvalidForm))
		h.StartForm(ctx, m, chatID)
		return
	}
	if !current.Submitting {
		sending := current
		sending.Submitting = true
		common.EditPanel(ctx, m, h, panel, sending)
	}

	result, err := h.BookingService.SubmitReservation(ctx, chatID)
	if err != nil {
		answerAlert(ctx, m, h, callback.ID, common.ErrorMessage(err))
		if errors.Is(err, service.ErrSubmitInProgress) {
			return
		}
		if errors.Is(err, service.ErrInvalidForm) {
			h.StartForm(ctx, m, chatID)
		}
		common.EditPanel(ctx, m, h, panel, current)
		return
	}

	h.Logger.Info("Reservation submitted",
		zap.Int64("chat_id", chatID),
		zap.String("outcome", string(result.Outcome)))

	text := result.Message
	if result.Outcome == model.SubmissionCreated {
		text = "✅ " + text
	} else {
		text = "❌ " + text
	}
	answerAlert(ctx, m, h, callback.ID, text)
	if !common.CallbackTextFits(text) {
		// В alert не помещается: полный ответ бэкенда отдельным сообщением
		if _, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
			h.Logger.Error("Failed to send reservation result", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	common.EditPanel(ctx, m, h, panel, result.Plan)
}

// panelMessage сообщение-панель чата: отправка из сводки формы приходит из другого сообщения
func panelMessage(ctx context.Context, h *callbacktypes.Handler, msg *models.Message) *models.Message {
	session, err := h.BookingService.Session(ctx, msg.Chat.ID)
	if err != nil || session.MessageID == 0 || session.MessageID == msg.ID {
		return msg
	}
	return &models.Message{ID: session.MessageID, Chat: msg.Chat}
}

func answerAlert(ctx context.Context, m Messenger, h *callbacktypes.Handler, callbackID, text string) {
	if err := common.AnswerCallbackAlert(ctx, m, callbackID, text); err != nil {
		h.Logger.Error("Failed to answer callback query",
			zap.String("callback_id", callbackID),
			zap.Error(err))
	}
}
