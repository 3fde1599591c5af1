// Package bookingapi клиент удалённого бэкенда бронирований
package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	availableSlotsPath = "/api/availableSlots"
	reservationsPath   = "/api/reservations"

	// maxErrorBody ограничивает чтение тела ошибки
	maxErrorBody = 64 << 10
)

// ErrFetchFailure сетевая ошибка или нечитаемый ответ
var ErrFetchFailure = errors.New("booking api: request failed")

// RejectionError бэкенд ответил не-2xx
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("booking api: rejected with status %d", e.Status)
	}
	return fmt.Sprintf("booking api: rejected with status %d: %s", e.Status, e.Message)
}

// ReservationResult тело успешного ответа; бэкенд волен вернуть что угодно
type ReservationResult struct {
	Status    int
	RequestID string
	Body      map[string]any
}

// DefaultTimeout таймаут запроса, если WithTimeout не задан
const DefaultTimeout = 15 * time.Second

// Client HTTP клиент бэкенда бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// ClientOption настраивает Client
type ClientOption func(*Client)

// WithHTTPClient свой http.Client, например с другим транспортом
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout таймаут запроса; применяется после всех опций и не зависит от их порядка
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient создаёт клиент бэкенда.
// Переданный через WithHTTPClient клиент не изменяется: таймаут ставится на его копию
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// GetAvailableSlots возвращает слоты на дату (YYYY-MM-DD).
// Возвращает *RejectionError для не-2xx и ErrFetchFailure для сетевых ошибок.
func (c *Client) GetAvailableSlots(ctx context.Context, date string) ([]model.TimeSlot, error) {
	endpoint := c.baseURL + availableSlotsPath + "?" + url.Values{"date": {date}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, readRejection(resp)
	}

	var result model.SlotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode slots: %v", ErrFetchFailure, err)
	}

	c.logger.Debug("Available slots fetched",
		zap.String("date", date),
		zap.Int("slots", len(result.Slots)))

	if result.Slots == nil {
		return []model.TimeSlot{}, nil
	}
	return result.Slots, nil
}

// SubmitReservation отправляет бронь как JSON.
// Возвращает *RejectionError для не-2xx и ErrFetchFailure для сетевых ошибок.
func (c *Client) SubmitReservation(ctx context.Context, reservation model.ReservationRequest) (*ReservationResult, error) {
	body, err := json.Marshal(reservation)
	if err != nil {
		return nil, fmt.Errorf("booking api: marshal reservation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+reservationsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetchFailure, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, readRejection(resp)
	}

	result := &ReservationResult{Status: resp.StatusCode, RequestID: requestID}
	// Тело успешного ответа не обязательно: пустое или не-JSON не считается ошибкой
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &result.Body); err != nil {
			c.logger.Warn("Reservation response is not a JSON object",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
	}

	c.logger.Info("Reservation created",
		zap.String("request_id", requestID),
		zap.String("date", reservation.BookingDate),
		zap.Int("slots", len(reservation.TimeSlots)))

	return result, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// readRejection достаёт поле message из тела ошибки, если оно есть
func readRejection(resp *http.Response) error {
	rej := &RejectionError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return rej
	}
	var msg model.APIMessage
	if json.Unmarshal(raw, &msg) == nil {
		rej.Message = msg.Message
	}
	return rej
}
