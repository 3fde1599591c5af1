package booking

import "github.com/Freeeeeet/reservas_bot/internal/model"

// SlotKind визуальное состояние кнопки слота
type SlotKind string

const (
	SlotSelectable  SlotKind = "selectable"
	SlotReserved    SlotKind = "reserved"    // занят другой бронью
	SlotUnavailable SlotKind = "unavailable" // недоступен по другой причине
)

// SlotView инструкция отрисовки одной кнопки
type SlotView struct {
	Index    int
	Label    string
	Kind     SlotKind
	Selected bool
}

// Disabled кнопка не реагирует на нажатия
func (v SlotView) Disabled() bool {
	return v.Kind != SlotSelectable
}

// Plan всё, что нужно адаптеру, чтобы нарисовать панель
type Plan struct {
	Date         string
	Slots        []SlotView
	Selected     []string
	SlotsVisible bool
	ToggleLabel  string
	Loading      bool
	Submitting   bool
	Form         model.ContactForm
	Generation   uint64 // попадает в callback кнопок слотов
}

// Empty бэкенд не вернул ни одного слота
func (p Plan) Empty() bool {
	return len(p.Slots) == 0
}

// ClassifySlot выбирает состояние кнопки по флагам слота
func ClassifySlot(slot model.TimeSlot) SlotKind {
	switch {
	case slot.Selectable:
		return SlotSelectable
	case slot.Reserved:
		return SlotReserved
	default:
		return SlotUnavailable
	}
}

// BuildSlotViews сопоставляет слоты и текущий выбор
func BuildSlotViews(slots []model.TimeSlot, sel *Selection) []SlotView {
	views := make([]SlotView, 0, len(slots))
	for i, slot := range slots {
		kind := ClassifySlot(slot)
		views = append(views, SlotView{
			Index:    i,
			Label:    slot.TimeSlot,
			Kind:     kind,
			Selected: kind == SlotSelectable && sel != nil && sel.Contains(slot.TimeSlot),
		})
	}
	return views
}

// BuildPlan строит инструкции отрисовки из состояния сессии
func BuildPlan(s *model.Session) Plan {
	sel := NewSelection(s.Selection...)
	return Plan{
		Date:         s.Date,
		Slots:        BuildSlotViews(s.Slots, sel),
		Selected:     sel.Labels(),
		SlotsVisible: s.SlotsVisible,
		ToggleLabel:  ToggleLabel(s.SlotsVisible),
		Loading:      s.Loading,
		Submitting:   s.Submitting,
		Form:         s.Form,
		Generation:   s.Generation,
	}
}
