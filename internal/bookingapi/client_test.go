package bookingapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		client := NewClient("http://localhost:3000")
		require.NotNil(t, client)
		assert.Equal(t, "http://localhost:3000", client.baseURL)
		assert.Equal(t, 15*time.Second, client.httpClient.Timeout)
	})

	t.Run("creates client with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client := NewClient("http://localhost:3000", WithHTTPClient(customClient))
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("timeout option", func(t *testing.T) {
		client := NewClient("http://localhost:3000", WithTimeout(2*time.Second))
		assert.Equal(t, 2*time.Second, client.httpClient.Timeout)
	})

	t.Run("timeout does not depend on option order", func(t *testing.T) {
		for _, opts := range [][]ClientOption{
			{WithTimeout(3 * time.Second), WithHTTPClient(&http.Client{Timeout: time.Minute})},
			{WithHTTPClient(&http.Client{Timeout: time.Minute}), WithTimeout(3 * time.Second)},
		} {
			client := NewClient("http://localhost:3000", opts...)
			assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
		}
	})

	t.Run("timeout leaves caller's client untouched", func(t *testing.T) {
		customClient := &http.Client{Timeout: time.Minute}
		client := NewClient("http://localhost:3000", WithHTTPClient(customClient), WithTimeout(3*time.Second))
		assert.Equal(t, time.Minute, customClient.Timeout)
		assert.NotSame(t, customClient, client.httpClient)
	})
}

func TestClient_GetAvailableSlots(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/availableSlots", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "2024-05-01", r.URL.Query().Get("date"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			json.NewEncoder(w).Encode(model.SlotsResponse{Slots: []model.TimeSlot{
				{TimeSlot: "09:00-10:00", Selectable: true},
				{TimeSlot: "10:00-11:00", Reserved: true},
			}})
		}))
		defer server.Close()

		slots, err := NewClient(server.URL).GetAvailableSlots(context.Background(), "2024-05-01")
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, "09:00-10:00", slots[0].TimeSlot)
		assert.True(t, slots[0].Selectable)
		assert.True(t, slots[1].Reserved)
	})

	t.Run("server error carries message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"no date"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).GetAvailableSlots(context.Background(), "2024-05-01")
		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, http.StatusInternalServerError, rej.Status)
		assert.Equal(t, "no date", rej.Message)
		assert.Contains(t, rej.Error(), "no date")
	})

	t.Run("connection error", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", WithTimeout(time.Second))
		_, err := client.GetAvailableSlots(context.Background(), "2024-05-01")
		assert.ErrorIs(t, err, ErrFetchFailure)
	})

	t.Run("missing slots field yields empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		slots, err := NewClient(server.URL).GetAvailableSlots(context.Background(), "2024-05-01")
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("malformed body is a fetch failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).GetAvailableSlots(context.Background(), "2024-05-01")
		assert.ErrorIs(t, err, ErrFetchFailure)
	})
}

func TestClient_SubmitReservation(t *testing.T) {
	reservation := model.ReservationRequest{
		BookingDate: "2024-05-01",
		TimeSlots:   []string{"09:00-10:00", "10:00-11:00"},
		Nombre:      "A",
		Email:       "a@x.com",
		Telefono:    "123",
		Mensaje:     "hi",
	}

	t.Run("posts JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/reservations", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got model.ReservationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, reservation, got)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"r-1"}`))
		}))
		defer server.Close()

		result, err := NewClient(server.URL).SubmitReservation(context.Background(), reservation)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, result.Status)
		assert.Equal(t, "r-1", result.Body["id"])
		assert.NotEmpty(t, result.RequestID)
	})

	t.Run("empty success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		result, err := NewClient(server.URL).SubmitReservation(context.Background(), reservation)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, result.Status)
	})

	t.Run("rejection carries server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Slot taken"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).SubmitReservation(context.Background(), reservation)
		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, http.StatusBadRequest, rej.Status)
		assert.Equal(t, "Slot taken", rej.Message)
	})

	t.Run("rejection without message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`<html>conflict</html>`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).SubmitReservation(context.Background(), reservation)
		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Empty(t, rej.Message)
	})

	t.Run("connection error", func(t *testing.T) {
		_, err := NewClient("http://127.0.0.1:1", WithTimeout(time.Second)).
			SubmitReservation(context.Background(), reservation)
		assert.ErrorIs(t, err, ErrFetchFailure)
	})
}
