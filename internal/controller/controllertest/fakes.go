// Package controllertest содержит фейки Bot API и бэкенда для тестов обработчиков.
package controllertest

import (
	"context"
	"errors"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/Freeeeeet/reservas_bot/internal/bookingapi"
	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Messenger записывает все вызовы Bot API
type Messenger struct {
	mu      sync.Mutex
	nextID  int
	Sent    []*bot.SendMessageParams
	Edited  []*bot.EditMessageTextParams
	Answers []*bot.AnswerCallbackQueryParams
	Photos  []*bot.SendPhotoParams
	Images  [][]byte
}

func NewMessenger() *Messenger {
	return &Messenger{nextID: 100}
}

func (m *Messenger) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, params)
	m.nextID++
	return &models.Message{ID: m.nextID}, nil
}

func (m *Messenger) EditMessageText(_ context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edited = append(m.Edited, params)
	return &models.Message{ID: params.MessageID}, nil
}

// AnswerCallbackQuery отклоняет текст длиннее 200 символов, как это делает Bot API
func (m *Messenger) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if utf8.RuneCountInString(params.Text) > 200 {
		return false, errors.New("Bad Request: MESSAGE_TOO_LONG")
	}
	m.Answers = append(m.Answers, params)
	return true, nil
}

func (m *Messenger) SendPhoto(_ context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Photos = append(m.Photos, params)
	if upload, ok := params.Photo.(*models.InputFileUpload); ok && upload.Data != nil {
		data, _ := io.ReadAll(upload.Data)
		m.Images = append(m.Images, data)
	}
	m.nextID++
	return &models.Message{ID: m.nextID}, nil
}

// LastSent текст последнего отправленного сообщения
func (m *Messenger) LastSent() *bot.SendMessageParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return m.Sent[len(m.Sent)-1]
}

// LastEdited последнее редактирование
func (m *Messenger) LastEdited() *bot.EditMessageTextParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Edited) == 0 {
		return nil
	}
	return m.Edited[len(m.Edited)-1]
}

// LastAnswer последний ответ на callback
func (m *Messenger) LastAnswer() *bot.AnswerCallbackQueryParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Answers) == 0 {
		return nil
	}
	return m.Answers[len(m.Answers)-1]
}

// API бэкенд бронирований в памяти
type API struct {
	mu        sync.Mutex
	Slots     map[string][]model.TimeSlot
	SubmitErr error
	Submitted []model.ReservationRequest
}

func NewAPI() *API {
	return &API{Slots: map[string][]model.TimeSlot{
		"2024-05-01": {
			{TimeSlot: "09:00-10:00", Selectable: true},
			{TimeSlot: "10:00-11:00", Selectable: true},
			{TimeSlot: "11:00-12:00", Reserved: true},
		},
		"2024-05-02": {
			{TimeSlot: "15:00-16:00", Selectable: true},
		},
	}}
}

func (a *API) GetAvailableSlots(_ context.Context, date string) ([]model.TimeSlot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Slots[date], nil
}

func (a *API) SubmitReservation(_ context.Context, req model.ReservationRequest) (*bookingapi.ReservationResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Submitted = append(a.Submitted, req)
	if a.SubmitErr != nil {
		return nil, a.SubmitErr
	}
	return &bookingapi.ReservationResult{Status: 201}, nil
}

// ButtonTexts подписи всех кнопок inline клавиатуры
func ButtonTexts(markup models.ReplyMarkup) []string {
	kb, ok := markup.(*models.InlineKeyboardMarkup)
	if !ok || kb == nil {
		return nil
	}
	var texts []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			texts = append(texts, b.Text)
		}
	}
	return texts
}
