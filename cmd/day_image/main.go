package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/booking"
	"github.com/Freeeeeet/reservas_bot/internal/bookingapi"
	"github.com/Freeeeeet/reservas_bot/internal/config"
	"github.com/Freeeeeet/reservas_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/reservas_bot/internal/model"
)

// Рисует PNG со слотами даты: go run ./cmd/day_image [YYYY-MM-DD]
// Слоты берутся с бэкенда; BOOKING_API_URL=offline рисует тестовые данные
func main() {
	date := booking.FormatDate(time.Now())
	if len(os.Args) > 1 {
		date = os.Args[1]
	}
	if _, err := booking.ParseDate(date); err != nil {
		fmt.Printf("Fecha no válida: %v\n", err)
		os.Exit(1)
	}

	slots := sampleSlots()
	if os.Getenv("BOOKING_API_URL") != "offline" {
		baseURL := os.Getenv("BOOKING_API_URL")
		if baseURL == "" {
			baseURL = config.DefaultBookingAPIURL
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		fetched, err := bookingapi.NewClient(baseURL).GetAvailableSlots(ctx, date)
		if err != nil {
			fmt.Printf("Error al obtener horarios: %v\n", err)
			os.Exit(1)
		}
		slots = fetched
	}

	// Генерируем изображение
	imageData, err := common.GenerateDayImage(date, booking.BuildSlotViews(slots, booking.NewSelection()))
	if err != nil {
		fmt.Printf("Error al generar la imagen: %v\n", err)
		os.Exit(1)
	}

	// Сохраняем в файл
	filename := fmt.Sprintf("horario-%s.png", date)
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Error al guardar el archivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Imagen guardada en %s\n", filename)
	fmt.Printf("📊 Horarios: %d\n", len(slots))
}

func sampleSlots() []model.TimeSlot {
	return []model.TimeSlot{
		{TimeSlot: "09:00-10:00", Selectable: true},
		{TimeSlot: "10:00-11:00", Selectable: true},
		{TimeSlot: "11:00-12:00", Reserved: true},
		{TimeSlot: "12:00-13:00"},
		{TimeSlot: "16:00-17:00", Selectable: true},
	}
}
