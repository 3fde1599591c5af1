package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/reservas_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Messenger методы Bot API, которыми пользуются обработчики.
// *bot.Bot удовлетворяет интерфейсу
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
}

var _ Messenger = (*bot.Bot)(nil)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	BookingService *service.BookingService
	Logger         *zap.Logger

	// Функции-хэндлеры из обработчиков команд
	StartForm func(ctx context.Context, m Messenger, chatID int64)
}
