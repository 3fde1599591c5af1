package state

import (
	"context"

	"github.com/Freeeeeet/reservas_bot/internal/model"
)

// Store хранилище сессий формы бронирования по chatID
// Get возвращает nil, nil если сессии нет
type Store interface {
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, chatID int64) error
}

var (
	_ Store = (*Manager)(nil)
	_ Store = (*RedisStore)(nil)
)
