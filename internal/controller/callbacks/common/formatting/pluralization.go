package formatting

import "fmt"

// PluralizeSlots "1 horario", "3 horarios"
func PluralizeSlots(count int) string {
	if count == 1 {
		return "1 horario"
	}
	return fmt.Sprintf("%d horarios", count)
}
