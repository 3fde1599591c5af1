package controller

import (
	"context"

	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/reservas_bot/internal/controller/handlers"
	"github.com/Freeeeeet/reservas_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	logger *zap.Logger,
) *BotController {
	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(bookingService, logger)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		bookingService,
		logger,
		cmdHandlers.StartForm,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// adapt передаёт *bot.Bot обработчику как Messenger
func adapt(fn func(ctx context.Context, m handlers.Messenger, update *models.Update)) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		fn(ctx, b, update)
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdStart, bot.MatchTypeExact, adapt(c.handlers.HandleStart))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdAyuda, bot.MatchTypeExact, adapt(c.handlers.HandleHelp))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdFecha, bot.MatchTypePrefix, adapt(c.handlers.HandleDate))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdHorario, bot.MatchTypeExact, adapt(c.handlers.HandleSchedule))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdImagen, bot.MatchTypeExact, adapt(c.handlers.HandleImage))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdReservar, bot.MatchTypeExact, adapt(c.handlers.HandleReserve))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdCancelar, bot.MatchTypeExact, adapt(c.handlers.HandleCancel))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, handlers.CmdHistorial, bot.MatchTypeExact, adapt(c.handlers.HandleHistory))

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, adapt(c.handlers.HandleTextMessage))

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, adapt(c.callbackHandler.HandleCallbackQuery))

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: Commands(),
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Commands меню команд бота
func Commands() []models.BotCommand {
	return []models.BotCommand{
		{Command: "start", Description: "🚀 Empezar una reserva"},
		{Command: "fecha", Description: "📅 Elegir fecha"},
		{Command: "horario", Description: "🕒 Ver horarios"},
		{Command: "imagen", Description: "🖼 Imagen de los horarios"},
		{Command: "reservar", Description: "📝 Datos de contacto"},
		{Command: "cancelar", Description: "❌ Cancelar"},
		{Command: "historial", Description: "📜 Mis reservas"},
		{Command: "ayuda", Description: "❓ Ayuda"},
	}
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
