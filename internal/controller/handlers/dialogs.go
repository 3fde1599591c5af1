package handlers

import (
	"context"

	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var stepPrompts = map[model.DialogStep]string{
	model.StepNombre:   promptNombre,
	model.StepEmail:    promptEmail,
	model.StepTelefono: promptTelefono,
	model.StepMensaje:  promptMensaje,
}

// HandleReserve обрабатывает команду /reservar
func (h *Handlers) HandleReserve(ctx context.Context, m Messenger, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.StartForm(ctx, m, update.Message.Chat.ID)
}

// StartForm начинает диалог заполнения контактных данных с первого шага
func (h *Handlers) StartForm(ctx context.Context, m Messenger, chatID int64) {
	if err := h.bookingService.SetStep(ctx, chatID, model.StepNombre); err != nil {
		h.logger.Error("Failed to start form dialog", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	h.logger.Info("Form dialog started", zap.Int64("chat_id", chatID))
	h.sendMessage(ctx, m, chatID, promptNombre)
}

// handleFormStep сохраняет ответ и задаёт следующий вопрос; после последнего показывает сводку
func (h *Handlers) handleFormStep(ctx context.Context, m Messenger, chatID int64, text string) {
	step, err := h.bookingService.HandleFormInput(ctx, chatID, text)
	if err != nil {
		h.logger.Info("Form input rejected",
			zap.Int64("chat_id", chatID),
			zap.String("step", string(step)),
			zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	if prompt, ok := stepPrompts[step]; ok {
		h.sendMessage(ctx, m, chatID, prompt)
		return
	}

	plan, err := h.bookingService.Plan(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to load plan", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, m, chatID, common.ErrorMessage(err))
		return
	}

	markup := keyboard.NewBuilder().Row(keyboard.ReviewRow()...).Build()
	h.sendHTML(ctx, m, chatID, common.FormSummary(plan), markup)
}
