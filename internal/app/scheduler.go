package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurger удаляет простаивающие сессии (in-memory хранилище)
type SessionPurger interface {
	PurgeIdle(ctx context.Context, ttl time.Duration) (int, error)
}

// SubmissionPruner удаляет старые записи журнала попыток
type SubmissionPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SchedulerConfig параметры фоновых задач
type SchedulerConfig struct {
	Interval            time.Duration
	SessionTTL          time.Duration
	SubmissionRetention time.Duration
}

// Scheduler управляет фоновыми задачами очистки
type Scheduler struct {
	sessions    SessionPurger    // может быть nil
	submissions SubmissionPruner // может быть nil
	cfg         SchedulerConfig
	logger      *zap.Logger
	stopChan    chan struct{}
	now         func() time.Time
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sessions SessionPurger, submissions SubmissionPruner, cfg SchedulerConfig, logger *zap.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Scheduler{
		sessions:    sessions,
		submissions: submissions,
		cfg:         cfg,
		logger:      logger,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.cfg.Interval))

	go s.runCleanupTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runCleanupTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-s.stopChan:
			s.logger.Info("Cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Cleanup task cancelled")
			return
		}
	}
}

// RunOnce выполняет одну итерацию очистки
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.sessions != nil && s.cfg.SessionTTL > 0 {
		purged, err := s.sessions.PurgeIdle(ctx, s.cfg.SessionTTL)
		if err != nil {
			s.logger.Error("Failed to purge idle sessions", zap.Error(err))
		} else if purged > 0 {
			s.logger.Info("Idle sessions purged", zap.Int("count", purged))
		}
	}

	if s.submissions != nil && s.cfg.SubmissionRetention > 0 {
		cutoff := s.now().Add(-s.cfg.SubmissionRetention)
		deleted, err := s.submissions.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			s.logger.Error("Failed to prune reservation attempts", zap.Error(err))
		} else if deleted > 0 {
			s.logger.Info("Old reservation attempts pruned", zap.Int64("count", deleted))
		}
	}
}
