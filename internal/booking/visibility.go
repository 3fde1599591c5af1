package booking

const (
	LabelHideSlots = "🙈 Ocultar horario"
	LabelShowSlots = "👀 Mostrar horario"
)

// ToggleLabel подпись кнопки отражает действие, которое она выполнит
func ToggleLabel(visible bool) string {
	if visible {
		return LabelHideSlots
	}
	return LabelShowSlots
}
