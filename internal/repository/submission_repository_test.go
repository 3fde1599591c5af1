package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubmissionRepository(mock)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	rec := &model.SubmissionRecord{
		ChatID:      42,
		BookingDate: "2024-05-01",
		TimeSlots:   []string{"09:00-10:00"},
		Email:       "a@x.com",
		Outcome:     model.SubmissionRejected,
		HTTPStatus:  400,
		Message:     "Slot taken",
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservation_attempts")).
		WithArgs(pgxmock.AnyArg(), int64(42), "2024-05-01", []string{"09:00-10:00"}, "a@x.com", "rejected", 400, "Slot taken").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	require.NoError(t, repo.Create(context.Background(), rec))
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, createdAt, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_CreateError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservation_attempts")).
		WillReturnError(errors.New("connection reset"))

	err = NewSubmissionRepository(mock).Create(context.Background(), &model.SubmissionRecord{ChatID: 1})
	assert.ErrorContains(t, err, "create reservation attempt")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_ListByChat(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservation_attempts")).
		WithArgs(int64(42), 5).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "chat_id", "booking_date", "time_slots", "email", "outcome", "http_status", "message", "created_at",
		}).AddRow(id, int64(42), "2024-05-01", []string{"09:00-10:00"}, "a@x.com", "created", 201, "", createdAt))

	records, err := NewSubmissionRepository(mock).ListByChat(context.Background(), 42, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, model.SubmissionCreated, records[0].Outcome)
	assert.Equal(t, []string{"09:00-10:00"}, records[0].TimeSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_DeleteOlderThan(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservation_attempts")).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := NewSubmissionRepository(mock).DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
