package booking

import (
	"errors"

	"github.com/Freeeeeet/reservas_bot/internal/model"
)

var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotNotSelectable = errors.New("slot is not selectable")
)

// FindSlot ищет слот по метке в последнем полученном списке
func FindSlot(slots []model.TimeSlot, label string) (model.TimeSlot, bool) {
	for _, s := range slots {
		if s.TimeSlot == label {
			return s, true
		}
	}
	return model.TimeSlot{}, false
}

// ToggleSlot переключает выбор слота в сессии
// Метки, которых нет в текущем списке или которые нельзя выбрать, отклоняются
func ToggleSlot(s *model.Session, label string) (bool, error) {
	slot, ok := FindSlot(s.Slots, label)
	if !ok {
		return false, ErrSlotNotFound
	}
	if ClassifySlot(slot) != SlotSelectable {
		return false, ErrSlotNotSelectable
	}

	sel := NewSelection(s.Selection...)
	selected := sel.Toggle(label)
	s.Selection = sel.Labels()
	return selected, nil
}

// ApplySlots заменяет список слотов целиком и сбрасывает выбор
func ApplySlots(s *model.Session, slots []model.TimeSlot) {
	s.Slots = append([]model.TimeSlot(nil), slots...)
	s.Selection = nil
	s.Loading = false
}
