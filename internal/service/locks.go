package service

import "sync"

// chatLocks сериализует read-modify-write сессии одного чата
// Блокировка никогда не удерживается во время сетевых запросов
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *chatLocks) lock(chatID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[chatID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
