package model

// ReservationRequest тело POST /api/reservations
type ReservationRequest struct {
	BookingDate string   `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	TimeSlots   []string `json:"timeSlots"`
	Nombre      string   `json:"nombre" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Telefono    string   `json:"telefono" validate:"required,max=30"`
	Mensaje     string   `json:"mensaje" validate:"max=1000"`
}

// ContactForm поля формы кроме даты
type ContactForm struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Mensaje  string `json:"mensaje"`
}

// IsEmpty true если ни одно поле не заполнено
func (f ContactForm) IsEmpty() bool {
	return f == ContactForm{}
}
