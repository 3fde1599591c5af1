package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, m Messenger, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, m, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case strings.HasPrefix(data, common.SlotPrefix):
		HandleSlot(ctx, m, callback, msg, h)
	case data == keyboard.ToggleSlots:
		HandleToggleSlots(ctx, m, callback, msg, h)
	case data == keyboard.DatePrev:
		HandleShiftDate(ctx, m, callback, msg, h, -1)
	case data == keyboard.DateNext:
		HandleShiftDate(ctx, m, callback, msg, h, 1)
	case data == keyboard.DateToday:
		HandleToday(ctx, m, callback, msg, h)
	case data == keyboard.Refresh:
		HandleRefresh(ctx, m, callback, msg, h)
	case data == keyboard.Submit:
		HandleSubmit(ctx, m, callback, msg, h)
	case data == keyboard.EditForm:
		common.AnswerCallback(ctx, m, callback.ID, "")
		h.StartForm(ctx, m, msg.Chat.ID)
	case data == keyboard.Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, m, callback.ID, "")
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, m, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
	}
}
