package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/Freeeeeet/reservas_bot/internal/repository/base"
	"github.com/google/uuid"
)

// SubmissionRepository журнал попыток бронирования
type SubmissionRepository struct {
	*base.Repository
}

func NewSubmissionRepository(db base.DB) *SubmissionRepository {
	return &SubmissionRepository{Repository: base.NewRepository(db)}
}

// Create сохраняет попытку; ID генерируется, если не задан
func (r *SubmissionRepository) Create(ctx context.Context, rec *model.SubmissionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	slots := rec.TimeSlots
	if slots == nil {
		slots = []string{}
	}

	query := `
		INSERT INTO reservation_attempts (id, chat_id, booking_date, time_slots, email, outcome, http_status, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		rec.ID,
		rec.ChatID,
		rec.BookingDate,
		slots,
		rec.Email,
		string(rec.Outcome),
		rec.HTTPStatus,
		rec.Message,
	).Scan(&rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("create reservation attempt: %w", err)
	}

	return nil
}

// ListByChat последние попытки чата, новые первыми
func (r *SubmissionRepository) ListByChat(ctx context.Context, chatID int64, limit int) ([]*model.SubmissionRecord, error) {
	query := `
		SELECT id, chat_id, booking_date, time_slots, email, outcome, http_status, message, created_at
		FROM reservation_attempts
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reservation attempts: %w", err)
	}
	defer rows.Close()

	var records []*model.SubmissionRecord
	for rows.Next() {
		var rec model.SubmissionRecord
		var outcome string
		if err := rows.Scan(
			&rec.ID,
			&rec.ChatID,
			&rec.BookingDate,
			&rec.TimeSlots,
			&rec.Email,
			&outcome,
			&rec.HTTPStatus,
			&rec.Message,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation attempt: %w", err)
		}
		rec.Outcome = model.SubmissionOutcome(outcome)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation attempts: %w", err)
	}

	return records, nil
}

// DeleteOlderThan удаляет записи старше cutoff
func (r *SubmissionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM reservation_attempts WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old reservation attempts: %w", err)
	}
	return affected, nil
}
