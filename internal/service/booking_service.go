package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/booking"
	"github.com/Freeeeeet/reservas_bot/internal/bookingapi"
	"github.com/Freeeeeet/reservas_bot/internal/controller/state"
	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/Freeeeeet/reservas_bot/internal/observability/metrics"
	"go.uber.org/zap"
)

// BookingAPI удалённый бэкенд бронирований
type BookingAPI interface {
	GetAvailableSlots(ctx context.Context, date string) ([]model.TimeSlot, error)
	SubmitReservation(ctx context.Context, req model.ReservationRequest) (*bookingapi.ReservationResult, error)
}

// SubmissionLog журнал попыток бронирования
type SubmissionLog interface {
	Create(ctx context.Context, rec *model.SubmissionRecord) error
}

// SubmissionHistory журнал, из которого можно читать попытки чата
type SubmissionHistory interface {
	ListByChat(ctx context.Context, chatID int64, limit int) ([]*model.SubmissionRecord, error)
}

// RenderResult результат перерисовки слотов
type RenderResult struct {
	Plan  booking.Plan
	Stale bool // ответ устарел: после него был запрошен более новый рендер
}

// SubmitResult итог отправки формы
type SubmitResult struct {
	Outcome model.SubmissionOutcome
	Message string // текст для пользователя
	Plan    booking.Plan
}

// BookingService контроллер формы бронирования: одна сессия на чат
type BookingService struct {
	api         BookingAPI
	store       state.Store
	submissions SubmissionLog // может быть nil
	metrics     *metrics.BookingMetrics
	logger      *zap.Logger
	loc         *time.Location
	now         func() time.Time
	locks       *chatLocks
}

// Option настраивает BookingService
type Option func(*BookingService)

// WithSubmissionLog включает журнал попыток
func WithSubmissionLog(log SubmissionLog) Option {
	return func(s *BookingService) {
		s.submissions = log
	}
}

// WithMetrics включает prometheus-метрики
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *BookingService) {
		s.metrics = m
	}
}

// WithLocation часовой пояс, в котором считается "сегодня"
func WithLocation(loc *time.Location) Option {
	return func(s *BookingService) {
		s.loc = loc
	}
}

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(api BookingAPI, store state.Store, logger *zap.Logger, opts ...Option) *BookingService {
	s := &BookingService{
		api:    api,
		store:  store,
		logger: logger,
		loc:    time.Local,
		now:    time.Now,
		locks:  newChatLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today текущая локальная дата в формате YYYY-MM-DD
func (s *BookingService) Today() string {
	return booking.FormatDate(s.now().In(s.loc))
}

// Session возвращает сессию чата (новую, если её ещё нет)
func (s *BookingService) Session(ctx context.Context, chatID int64) (*model.Session, error) {
	session, err := s.store.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		session = model.NewSession(chatID)
	}
	return session, nil
}

// Plan текущие инструкции отрисовки панели
func (s *BookingService) Plan(ctx context.Context, chatID int64) (booking.Plan, error) {
	session, err := s.Session(ctx, chatID)
	if err != nil {
		return booking.Plan{}, err
	}
	return booking.BuildPlan(session), nil
}

// update загружает сессию под блокировкой чата, применяет fn и сохраняет
func (s *BookingService) update(ctx context.Context, chatID int64, fn func(*model.Session) error) (*model.Session, error) {
	unlock := s.locks.lock(chatID)
	defer unlock()

	session, err := s.Session(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return session, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// FetchAvailableSlots запрашивает слоты на дату.
// Ошибки бэкенда только логируются: результатом будет пустой список.
func (s *BookingService) FetchAvailableSlots(ctx context.Context, date string) []model.TimeSlot {
	start := time.Now()
	slots, err := s.api.GetAvailableSlots(ctx, date)
	s.metrics.ObserveBackendLatency("available_slots", time.Since(start).Seconds())

	if err != nil {
		s.metrics.ObserveFetch("error")

		var rej *bookingapi.RejectionError
		if errors.As(err, &rej) {
			s.logger.Error("Failed to get available slots",
				zap.String("date", date),
				zap.Int("status", rej.Status),
				zap.String("message", rej.Message))
		} else {
			s.logger.Error("Available slots request failed",
				zap.String("date", date),
				zap.Error(err))
		}
		return []model.TimeSlot{}
	}

	if len(slots) == 0 {
		s.metrics.ObserveFetch("empty")
	} else {
		s.metrics.ObserveFetch("ok")
	}
	return slots
}

// Initialize начинает форму заново: сегодняшняя дата и первая загрузка слотов
func (s *BookingService) Initialize(ctx context.Context, chatID int64) (RenderResult, error) {
	today := s.Today()

	_, err := s.update(ctx, chatID, func(session *model.Session) error {
		fresh := model.NewSession(chatID)
		// Счётчик поколений не сбрасываем: ответы старых запросов должны остаться устаревшими
		fresh.Generation = session.Generation
		fresh.MessageID = session.MessageID
		fresh.Date = today
		*session = *fresh
		return nil
	})
	if err != nil {
		return RenderResult{}, err
	}

	s.logger.Info("Booking form initialized",
		zap.Int64("chat_id", chatID),
		zap.String("date", today))

	return s.RenderSlots(ctx, chatID, today)
}

// RenderSlots загружает слоты на дату и заменяет ими панель.
// Каждый вызов получает новый номер поколения; ответ применяется, только если
// за время запроса не было более нового вызова. Применение сбрасывает выбор.
func (s *BookingService) RenderSlots(ctx context.Context, chatID int64, date string) (RenderResult, error) {
	if date == "" {
		plan, err := s.Plan(ctx, chatID)
		return RenderResult{Plan: plan}, err
	}

	var generation uint64
	_, err := s.update(ctx, chatID, func(session *model.Session) error {
		session.Generation++
		generation = session.Generation
		session.Date = date
		session.Loading = true
		// Старые кнопки уходят сразу, как и "Cargando..." в контейнере
		session.Slots = nil
		session.Selection = nil
		return nil
	})
	if err != nil {
		return RenderResult{}, err
	}

	slots := s.FetchAvailableSlots(ctx, date)

	stale := false
	session, err := s.update(context.WithoutCancel(ctx), chatID, func(session *model.Session) error {
		if session.Generation != generation {
			stale = true
			return nil
		}
		booking.ApplySlots(session, slots)
		return nil
	})
	if err != nil {
		return RenderResult{}, err
	}

	if stale {
		s.metrics.ObserveStaleRender()
		s.logger.Info("Dropping stale slots response",
			zap.Int64("chat_id", chatID),
			zap.String("date", date),
			zap.Uint64("generation", generation),
			zap.Uint64("latest_generation", session.Generation))
	}

	return RenderResult{Plan: booking.BuildPlan(session), Stale: stale}, nil
}

// SetDate разбирает введённую дату и перерисовывает слоты
func (s *BookingService) SetDate(ctx context.Context, chatID int64, raw string) (RenderResult, error) {
	t, err := booking.ParseDate(raw)
	if err != nil {
		return RenderResult{}, err
	}
	return s.RenderSlots(ctx, chatID, booking.FormatDate(t))
}

// ShiftDate переходит на days дней вперёд или назад
func (s *BookingService) ShiftDate(ctx context.Context, chatID int64, days int) (RenderResult, error) {
	session, err := s.Session(ctx, chatID)
	if err != nil {
		return RenderResult{}, err
	}
	if session.Date == "" {
		return RenderResult{}, ErrNoDate
	}
	next, err := booking.ShiftDate(session.Date, days)
	if err != nil {
		return RenderResult{}, err
	}
	return s.RenderSlots(ctx, chatID, next)
}

// Refresh перезагружает слоты текущей даты
func (s *BookingService) Refresh(ctx context.Context, chatID int64) (RenderResult, error) {
	session, err := s.Session(ctx, chatID)
	if err != nil {
		return RenderResult{}, err
	}
	if session.Date == "" {
		return s.Initialize(ctx, chatID)
	}
	return s.RenderSlots(ctx, chatID, session.Date)
}

// ToggleSlot переключает выбор слота по метке; запроса к бэкенду нет
func (s *BookingService) ToggleSlot(ctx context.Context, chatID int64, label string) (booking.Plan, bool, error) {
	var selected bool
	session, err := s.update(ctx, chatID, func(session *model.Session) error {
		var err error
		selected, err = booking.ToggleSlot(session, label)
		return err
	})
	if err != nil {
		return booking.Plan{}, false, err
	}
	return booking.BuildPlan(session), selected, nil
}

// ToggleSlotAt переключает слот по позиции в панели поколения generation
// Нажатие на кнопку из устаревшей панели отклоняется
func (s *BookingService) ToggleSlotAt(ctx context.Context, chatID int64, generation uint64, index int) (booking.Plan, bool, error) {
	var selected bool
	session, err := s.update(ctx, chatID, func(session *model.Session) error {
		if session.Generation != generation || session.Loading {
			return ErrStalePanel
		}
		if index < 0 || index >= len(session.Slots) {
			return ErrSlotNotFound
		}
		var err error
		selected, err = booking.ToggleSlot(session, session.Slots[index].TimeSlot)
		return err
	})
	if err != nil {
		return booking.Plan{}, false, err
	}
	return booking.BuildPlan(session), selected, nil
}

// ToggleVisibility показывает или скрывает список слотов
func (s *BookingService) ToggleVisibility(ctx context.Context, chatID int64) (booking.Plan, error) {
	session, err := s.update(ctx, chatID, func(session *model.Session) error {
		session.SlotsVisible = !session.SlotsVisible
		return nil
	})
	if err != nil {
		return booking.Plan{}, err
	}
	return booking.BuildPlan(session), nil
}

// SetMessageID запоминает сообщение-панель чата
func (s *BookingService) SetMessageID(ctx context.Context, chatID int64, messageID int) error {
	_, err := s.update(ctx, chatID, func(session *model.Session) error {
		session.MessageID = messageID
		return nil
	})
	return err
}

// SetStep переводит диалог на шаг step
func (s *BookingService) SetStep(ctx context.Context, chatID int64, step model.DialogStep) error {
	_, err := s.update(ctx, chatID, func(session *model.Session) error {
		session.Step = step
		return nil
	})
	return err
}

// nextStep порядок шагов диалога заполнения формы
var nextStep = map[model.DialogStep]model.DialogStep{
	model.StepNombre:   model.StepEmail,
	model.StepEmail:    model.StepTelefono,
	model.StepTelefono: model.StepMensaje,
	model.StepMensaje:  model.StepReview,
}

var stepField = map[model.DialogStep]booking.FormField{
	model.StepNombre:   booking.FieldNombre,
	model.StepEmail:    booking.FieldEmail,
	model.StepTelefono: booking.FieldTelefono,
	model.StepMensaje:  booking.FieldMensaje,
}

// SkipMessageInput ответ, которым пропускают необязательное сообщение
const SkipMessageInput = "-"

// SetFormField проверяет и сохраняет поле формы.
// Если диалог ждёт именно это поле, он переходит к следующему шагу.
// При ошибке валидации шаг не меняется.
func (s *BookingService) SetFormField(ctx context.Context, chatID int64, field booking.FormField, value string) (model.DialogStep, error) {
	var step model.DialogStep
	_, err := s.update(ctx, chatID, func(session *model.Session) error {
		step = session.Step
		if err := booking.SetField(&session.Form, field, value); err != nil {
			return err
		}
		if stepField[session.Step] == field {
			session.Step = nextStep[session.Step]
			step = session.Step
		}
		return nil
	})
	return step, err
}

// HandleFormInput записывает текст в поле текущего шага и переходит к следующему
func (s *BookingService) HandleFormInput(ctx context.Context, chatID int64, text string) (model.DialogStep, error) {
	session, err := s.Session(ctx, chatID)
	if err != nil {
		return "", err
	}
	field, ok := stepField[session.Step]
	if !ok {
		return session.Step, fmt.Errorf("%w: no form field for step %q", ErrInvalidField, session.Step)
	}
	if field == booking.FieldMensaje && strings.TrimSpace(text) == SkipMessageInput {
		text = ""
	}
	return s.SetFormField(ctx, chatID, field, text)
}

// SubmitReservation отправляет бронь.
// Повторная отправка, пока первая не завершилась, отклоняется ErrSubmitInProgress.
// Ответ бэкенда не возвращается ошибкой: он описан в SubmitResult.
func (s *BookingService) SubmitReservation(ctx context.Context, chatID int64) (*SubmitResult, error) {
	var req model.ReservationRequest
	_, err := s.update(ctx, chatID, func(session *model.Session) error {
		if session.Submitting {
			return ErrSubmitInProgress
		}
		req = booking.BuildRequest(session.Date, session.Form, session.Selection)
		if err := booking.ValidateRequest(req); err != nil {
			return err
		}
		session.Submitting = true
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmitInProgress):
			s.metrics.ObserveSubmit("busy")
		case errors.Is(err, ErrInvalidForm):
			s.metrics.ObserveSubmit("invalid")
		}
		return nil, err
	}

	s.logger.Info("Submitting reservation",
		zap.Int64("chat_id", chatID),
		zap.String("date", req.BookingDate),
		zap.Strings("time_slots", req.TimeSlots))

	start := time.Now()
	created, apiErr := s.api.SubmitReservation(ctx, req)
	s.metrics.ObserveBackendLatency("reservations", time.Since(start).Seconds())

	result := &SubmitResult{}
	record := &model.SubmissionRecord{
		ChatID:      chatID,
		BookingDate: req.BookingDate,
		TimeSlots:   req.TimeSlots,
		Email:       req.Email,
	}

	var rej *bookingapi.RejectionError
	switch {
	case apiErr == nil:
		result.Outcome = model.SubmissionCreated
		result.Message = MsgReservationCreated
		if created != nil {
			record.HTTPStatus = created.Status
		}
	case errors.As(apiErr, &rej):
		result.Outcome = model.SubmissionRejected
		result.Message = rej.Message
		if result.Message == "" {
			result.Message = MsgReservationFallback
		}
		record.HTTPStatus = rej.Status
		record.Message = rej.Message
		s.logger.Warn("Reservation rejected",
			zap.Int64("chat_id", chatID),
			zap.Int("status", rej.Status),
			zap.String("message", rej.Message))
	default:
		result.Outcome = model.SubmissionFailed
		result.Message = MsgRequestFailed
		record.Message = apiErr.Error()
		s.logger.Error("Failed to submit reservation",
			zap.Int64("chat_id", chatID),
			zap.Error(apiErr))
	}
	record.Outcome = result.Outcome
	s.metrics.ObserveSubmit(string(result.Outcome))

	// Завершение не должно зависеть от отмены ctx, иначе форма останется заблокированной
	done := context.WithoutCancel(ctx)

	s.recordSubmission(done, record)

	finish := func(session *model.Session) error {
		session.Submitting = false
		if result.Outcome == model.SubmissionCreated {
			session.Form = model.ContactForm{}
			session.Step = model.StepNone
		}
		return nil
	}
	// Флаг Submitting в сохранённой сессии блокирует все следующие отправки: одна повторная попытка
	session, err := s.update(done, chatID, finish)
	if err != nil {
		s.logger.Warn("Failed to finish submit, retrying", zap.Int64("chat_id", chatID), zap.Error(err))
		session, err = s.update(done, chatID, finish)
	}
	if err != nil {
		s.logger.Error("Failed to clear submitting flag", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, err
	}

	if result.Outcome != model.SubmissionCreated {
		result.Plan = booking.BuildPlan(session)
		return result, nil
	}

	rendered, err := s.RenderSlots(done, chatID, session.Date)
	if err != nil {
		return nil, err
	}
	result.Plan = rendered.Plan
	return result, nil
}

func (s *BookingService) recordSubmission(ctx context.Context, rec *model.SubmissionRecord) {
	if s.submissions == nil {
		return
	}
	if err := s.submissions.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to record reservation attempt",
			zap.Int64("chat_id", rec.ChatID),
			zap.String("outcome", string(rec.Outcome)),
			zap.Error(err))
	}
}

// History последние попытки бронирования чата, новые первыми
func (s *BookingService) History(ctx context.Context, chatID int64, limit int) ([]*model.SubmissionRecord, error) {
	history, ok := s.submissions.(SubmissionHistory)
	if !ok {
		return nil, ErrHistoryDisabled
	}
	records, err := history.ListByChat(ctx, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return records, nil
}
