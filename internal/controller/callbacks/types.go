package callbacks

import (
	"context"

	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/reservas_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// Messenger методы Bot API, нужные обработчикам
type Messenger = callbacktypes.Messenger

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	bookingService *service.BookingService,
	logger *zap.Logger,
	startForm func(ctx context.Context, m Messenger, chatID int64),
) *Handler {
	inner := &callbacktypes.Handler{
		BookingService: bookingService,
		Logger:         logger,
		StartForm:      startForm,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, m Messenger, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	// Вызываем роутер
	Route(ctx, m, callback, h.Handler)
}
