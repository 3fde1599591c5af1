package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/go-playground/validator/v10"
)

// DateLayout формат даты в запросах и в поле формы
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidForm  = errors.New("invalid form")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatDate дата в формате YYYY-MM-DD по локальному календарю t
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate разбирает YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// ShiftDate сдвигает дату на days дней
func ShiftDate(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

// BuildRequest собирает тело запроса из формы и выбора
func BuildRequest(date string, form model.ContactForm, selection []string) model.ReservationRequest {
	slots := append([]string{}, selection...)
	return model.ReservationRequest{
		BookingDate: date,
		TimeSlots:   slots,
		Nombre:      form.Nombre,
		Email:       form.Email,
		Telefono:    form.Telefono,
		Mensaje:     form.Mensaje,
	}
}

// ValidateRequest проверяет обязательные поля перед отправкой
func ValidateRequest(req model.ReservationRequest) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidForm, strings.ToLower(verrs[0].Field()))
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// FormField поле контактной формы
type FormField string

const (
	FieldNombre   FormField = "nombre"
	FieldEmail    FormField = "email"
	FieldTelefono FormField = "telefono"
	FieldMensaje  FormField = "mensaje"
)

// fieldRules правила validator для отдельных полей формы
var fieldRules = map[FormField]string{
	FieldNombre:   "required,max=100",
	FieldEmail:    "required,email",
	FieldTelefono: "required,max=30",
	FieldMensaje:  "max=1000",
}

// SetField проверяет значение и записывает его в форму
func SetField(form *model.ContactForm, field FormField, value string) error {
	value = strings.TrimSpace(value)

	rule, ok := fieldRules[field]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidField, field)
	}
	if err := validate.Var(value, rule); err != nil {
		if field == FieldEmail {
			return fmt.Errorf("%w: %q", ErrInvalidEmail, value)
		}
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	switch field {
	case FieldNombre:
		form.Nombre = value
	case FieldEmail:
		form.Email = value
	case FieldTelefono:
		form.Telefono = value
	case FieldMensaje:
		form.Mensaje = value
	}
	return nil
}
