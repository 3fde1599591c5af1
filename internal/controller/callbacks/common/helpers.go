package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// SlotPrefix префикс callback кнопки слота: slot:<generation>:<index>
const SlotPrefix = "slot:"

// MaxCallbackTextLen лимит Bot API на текст ответа на callback query (в символах)
const MaxCallbackTextLen = 200

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, m callbacktypes.Messenger, callbackID string, text string) error {
	_, err := m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            TruncateCallbackText(text),
		ShowAlert:       false,
	})
	return err
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, m callbacktypes.Messenger, callbackID string, text string) error {
	_, err := m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            TruncateCallbackText(text),
		ShowAlert:       true,
	})
	return err
}

// CallbackTextFits помещается ли текст в ответ на callback целиком
func CallbackTextFits(text string) bool {
	return utf8.RuneCountInString(text) <= MaxCallbackTextLen
}

// TruncateCallbackText обрезает текст до MaxCallbackTextLen символов
func TruncateCallbackText(text string) string {
	if CallbackTextFits(text) {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxCallbackTextLen-1]) + "…"
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// SlotCallback callback data кнопки слота
func SlotCallback(generation uint64, index int) string {
	return fmt.Sprintf("%s%d:%d", SlotPrefix, generation, index)
}

// ParseSlotCallback разбирает "slot:<generation>:<index>"
func ParseSlotCallback(data string) (uint64, int, error) {
	parts := strings.Split(strings.TrimPrefix(data, SlotPrefix), ":")
	if !strings.HasPrefix(data, SlotPrefix) || len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	generation, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return generation, index, nil
}
