package booking

import "slices"

// Selection упорядоченное множество выбранных слотов (уникально по метке)
type Selection struct {
	labels []string
}

// NewSelection создаёт выбор из меток, дубликаты отбрасываются
func NewSelection(labels ...string) *Selection {
	s := &Selection{}
	for _, l := range labels {
		if !s.Contains(l) {
			s.labels = append(s.labels, l)
		}
	}
	return s
}

// Contains проверяет, выбран ли слот
func (s *Selection) Contains(label string) bool {
	return slices.Contains(s.labels, label)
}

// Toggle добавляет метку в конец или убирает её; возвращает новое состояние
func (s *Selection) Toggle(label string) bool {
	if i := slices.Index(s.labels, label); i >= 0 {
		s.labels = slices.Delete(s.labels, i, i+1)
		return false
	}
	s.labels = append(s.labels, label)
	return true
}

// Reset очищает выбор
func (s *Selection) Reset() {
	s.labels = nil
}

// Labels копия меток в порядке выбора
func (s *Selection) Labels() []string {
	return slices.Clone(s.labels)
}

func (s *Selection) Len() int {
	return len(s.labels)
}
