package booking

import (
	"strings"
	"encoding/json"
	"testing"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSlots() []model.TimeSlot {
	return []model.TimeSlot{
		{TimeSlot: "09:00-10:00", Selectable: true},
		{TimeSlot: "10:00-11:00", Selectable: true},
		{TimeSlot: "11:00-12:00", Selectable: false, Reserved: true},
		{TimeSlot: "12:00-13:00", Selectable: false, Reserved: false},
	}
}

func TestSelection_ToggleTwiceRestoresPrevious(t *testing.T) {
	sel := NewSelection("09:00-10:00")
	before := sel.Labels()

	assert.True(t, sel.Toggle("10:00-11:00"))
	assert.False(t, sel.Toggle("10:00-11:00"))
	assert.Equal(t, before, sel.Labels())

	assert.False(t, sel.Toggle("09:00-10:00"))
	assert.True(t, sel.Toggle("09:00-10:00"))
	assert.Equal(t, before, sel.Labels())
}

func TestSelection_UniqueAndOrdered(t *testing.T) {
	sel := NewSelection("b", "a", "b")
	assert.Equal(t, []string{"b", "a"}, sel.Labels())

	sel.Toggle("c")
	assert.Equal(t, []string{"b", "a", "c"}, sel.Labels())

	sel.Reset()
	assert.Equal(t, 0, sel.Len())
}

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		name string
		slot model.TimeSlot
		want SlotKind
	}{
		{"selectable", model.TimeSlot{Selectable: true}, SlotSelectable},
		{"selectable ignores reserved flag", model.TimeSlot{Selectable: true, Reserved: true}, SlotSelectable},
		{"reserved", model.TimeSlot{Reserved: true}, SlotReserved},
		{"unavailable", model.TimeSlot{}, SlotUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySlot(tt.slot))
		})
	}
}

func TestBuildSlotViews_MarkersAreExclusive(t *testing.T) {
	views := BuildSlotViews(sampleSlots(), NewSelection("10:00-11:00"))
	require.Len(t, views, 4)

	assert.Equal(t, SlotSelectable, views[0].Kind)
	assert.False(t, views[0].Selected)
	assert.False(t, views[0].Disabled())

	assert.True(t, views[1].Selected)

	assert.Equal(t, SlotReserved, views[2].Kind)
	assert.True(t, views[2].Disabled())
	assert.False(t, views[2].Selected)

	assert.Equal(t, SlotUnavailable, views[3].Kind)
	assert.True(t, views[3].Disabled())

	for i, v := range views {
		assert.Equal(t, i, v.Index)
	}
}

func TestToggleSlot(t *testing.T) {
	s := model.NewSession(1)
	ApplySlots(s, sampleSlots())

	selected, err := ToggleSlot(s, "09:00-10:00")
	require.NoError(t, err)
	assert.True(t, selected)
	assert.Equal(t, []string{"09:00-10:00"}, s.Selection)

	_, err = ToggleSlot(s, "11:00-12:00")
	assert.ErrorIs(t, err, ErrSlotNotSelectable)

	_, err = ToggleSlot(s, "23:00-24:00")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	assert.Equal(t, []string{"09:00-10:00"}, s.Selection)
}

func TestApplySlots_ResetsSelection(t *testing.T) {
	s := model.NewSession(1)
	ApplySlots(s, sampleSlots())
	_, err := ToggleSlot(s, "09:00-10:00")
	require.NoError(t, err)
	s.Loading = true

	ApplySlots(s, sampleSlots())
	assert.Empty(t, s.Selection)
	assert.False(t, s.Loading)
}

func TestToggleLabel_RoundTrip(t *testing.T) {
	visible := true
	original := ToggleLabel(visible)

	visible = !visible
	assert.Equal(t, LabelShowSlots, ToggleLabel(visible))
	visible = !visible
	assert.Equal(t, original, ToggleLabel(visible))
	assert.Equal(t, LabelHideSlots, original)
}

func TestBuildRequest_Body(t *testing.T) {
	form := model.ContactForm{Nombre: "A", Email: "a@x.com", Telefono: "123", Mensaje: "hi"}
	req := BuildRequest("2024-05-01", form, []string{"09:00-10:00", "10:00-11:00"})

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"bookingDate": "2024-05-01",
		"timeSlots": ["09:00-10:00", "10:00-11:00"],
		"nombre": "A",
		"email": "a@x.com",
		"telefono": "123",
		"mensaje": "hi"
	}`, string(body))
	assert.NoError(t, ValidateRequest(req))
}

func TestBuildRequest_EmptySelectionEncodesAsArray(t *testing.T) {
	req := BuildRequest("2024-05-01", model.ContactForm{}, nil)
	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"timeSlots":[]`)
}

func TestValidateRequest(t *testing.T) {
	req := BuildRequest("2024-05-01", model.ContactForm{Nombre: "A", Email: "nope", Telefono: "1"}, nil)
	err := ValidateRequest(req)
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.ErrorContains(t, err, "email")

	req = BuildRequest("01/05/2024", model.ContactForm{Nombre: "A", Email: "a@x.com", Telefono: "1"}, nil)
	assert.ErrorIs(t, ValidateRequest(req), ErrInvalidForm)
}

func TestSetField(t *testing.T) {
	var form model.ContactForm

	require.NoError(t, SetField(&form, FieldNombre, "A"))
	require.NoError(t, SetField(&form, FieldNombre, "  Ana  "))
	assert.Equal(t, "Ana", form.Nombre)
	assert.ErrorIs(t, SetField(&form, FieldNombre, "   "), ErrInvalidField)

	assert.ErrorIs(t, SetField(&form, FieldEmail, "ana-at-x"), ErrInvalidEmail)
	assert.Empty(t, form.Email)
	require.NoError(t, SetField(&form, FieldEmail, "ana@x.com"))
	assert.Equal(t, "ana@x.com", form.Email)

	assert.ErrorIs(t, SetField(&form, FieldTelefono, ""), ErrInvalidField)
	assert.ErrorIs(t, SetField(&form, FieldTelefono, strings.Repeat("6", 31)), ErrInvalidField)
	require.NoError(t, SetField(&form, FieldTelefono, "123"))
	require.NoError(t, SetField(&form, FieldTelefono, "+34 600 000 000"))

	require.NoError(t, SetField(&form, FieldMensaje, ""))
	assert.ErrorIs(t, SetField(&form, FormField("apellido"), "x"), ErrInvalidField)
}

func TestShiftDate(t *testing.T) {
	next, err := ShiftDate("2024-02-28", 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", next)

	prev, err := ShiftDate("2024-01-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", prev)

	_, err = ShiftDate("mañana", 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBuildPlan(t *testing.T) {
	s := model.NewSession(7)
	s.Date = "2024-05-01"
	ApplySlots(s, sampleSlots())
	_, err := ToggleSlot(s, "10:00-11:00")
	require.NoError(t, err)

	plan := BuildPlan(s)
	assert.Equal(t, "2024-05-01", plan.Date)
	assert.Equal(t, []string{"10:00-11:00"}, plan.Selected)
	assert.True(t, plan.SlotsVisible)
	assert.Equal(t, LabelHideSlots, plan.ToggleLabel)
	assert.False(t, plan.Empty())
	assert.True(t, plan.Slots[1].Selected)
}
