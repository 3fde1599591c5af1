package common

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/Freeeeeet/reservas_bot/internal/booking"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common/formatting"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 900
	headerHeight     = 110
	footerHeight     = 70
	rowHeight        = 56
	rowGap           = 10
	paddingX         = 40
	slotBorderRadius = 8.0
	shadowOffset     = 3.0
	minRows          = 1
)

// Константы шрифтов
const (
	titleFontSize  = 30.0
	slotFontSize   = 24.0
	statusFontSize = 18.0
	legendFontSize = 16.0
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 220}
	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotChosenColor = color.RGBA{66, 133, 244, 220}
	slotBookedColor = color.RGBA{255, 182, 193, 255} // Светло-розовый для занятых
	slotOffColor    = color.RGBA{158, 158, 158, 200}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotBookedText  = color.RGBA{120, 40, 50, 255}
	slotShadowColor = color.RGBA{0, 0, 0, 20}
	legendItemColor = color.RGBA{70, 74, 78, 220}
)

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont ставит шрифт Go нужного стиля или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		data := goregular.TTF
		if style == FontStyleBold {
			data = gobold.TTF
		}
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			parsed = nil
		}
		cachedFonts[style] = parsed
	}
	fontsMu.Unlock()

	if parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateDayImage рисует слоты одной даты: по строке на слот, цвет по состоянию
func GenerateDayImage(date string, slots []booking.SlotView) ([]byte, error) {
	rows := max(len(slots), minRows)
	height := headerHeight + rows*(rowHeight+rowGap) + footerHeight

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, date)
	if len(slots) == 0 {
		loadFont(dc, slotFontSize, FontStyleDefault)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(EmptySlotsText, imageWidth/2, float64(headerHeight+rowHeight/2), 0.5, 0.5)
	}
	for i, slot := range slots {
		drawSlot(dc, slot, float64(headerHeight+i*(rowHeight+rowGap)))
	}
	drawLegend(dc, float64(height-footerHeight/2))

	return encodeImage(dc)
}

// drawHeader рисует дату крупным шрифтом
func drawHeader(dc *gg.Context, date string) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(formatting.FormatDisplayDate(date), paddingX, float64(headerHeight)/2, 0, 0.5)
}

// drawSlot рисует один слот
func drawSlot(dc *gg.Context, slot booking.SlotView, y float64) {
	width := float64(imageWidth - 2*paddingX)
	fill := slotColor(slot)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(paddingX+shadowOffset, y+shadowOffset, width, rowHeight, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(paddingX, y, width, rowHeight, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(paddingX, y, width, rowHeight, slotBorderRadius)
	dc.Stroke()

	txtColor := slotTextColor
	if slot.Kind == booking.SlotReserved {
		txtColor = slotBookedText
	}

	loadFont(dc, slotFontSize, FontStyleBold)
	dc.SetColor(txtColor)
	dc.DrawStringAnchored(slot.Label, paddingX+20, y+rowHeight/2, 0, 0.5)

	status := formatting.GetSlotDisplay(slot.Kind).Text
	if slot.Selected {
		status = "Seleccionado"
	}
	loadFont(dc, statusFontSize, FontStyleDefault)
	dc.DrawStringAnchored(status, paddingX+width-20, y+rowHeight/2, 1, 0.5)
}

// slotColor возвращает цвет слота по его состоянию
func slotColor(slot booking.SlotView) color.RGBA {
	if slot.Selected {
		return slotChosenColor
	}
	switch slot.Kind {
	case booking.SlotSelectable:
		return slotFreeColor
	case booking.SlotReserved:
		return slotBookedColor
	default:
		return slotOffColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawLegend рисует легенду внизу
func drawLegend(dc *gg.Context, y float64) {
	items := []struct {
		Label string
		Clr   color.Color
	}{
		{formatting.GetSlotDisplay(booking.SlotSelectable).Text, slotFreeColor},
		{"Seleccionado", slotChosenColor},
		{formatting.GetSlotDisplay(booking.SlotReserved).Text, slotBookedColor},
		{formatting.GetSlotDisplay(booking.SlotUnavailable).Text, slotOffColor},
	}

	boxW, boxH := 20.0, 14.0
	x := float64(paddingX)

	loadFont(dc, legendFontSize, FontStyleDefault)
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(x, y-boxH/2, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, x+boxW+8, y, 0, 0.35)
		w, _ := dc.MeasureString(item.Label)
		x += boxW + 8 + w + 30
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
