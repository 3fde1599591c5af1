package handlers

import (
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/reservas_bot/internal/service"
	"go.uber.org/zap"
)

// Messenger методы Bot API, нужные обработчикам
type Messenger = callbacktypes.Messenger

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookingService *service.BookingService
	logger         *zap.Logger

	// panel общие зависимости для отрисовки панели
	panel *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(bookingService *service.BookingService, logger *zap.Logger) *Handlers {
	return &Handlers{
		bookingService: bookingService,
		logger:         logger,
		panel: &callbacktypes.Handler{
			BookingService: bookingService,
			Logger:         logger,
		},
	}
}
