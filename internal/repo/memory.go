package repo

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// MemoryRepository keeps users and analyses in process memory. The server
// falls back to it when no DATABASE_URL is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	users    map[string]memUser
	analyses []Analysis
	nextUser int
	nextRun  int
	now      func() time.Time
}

type memUser struct {
	id   int
	hash string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: map[string]memUser{}, now: time.Now}
}

func (m *MemoryRepository) CreateUser(_ context.Context, login, _, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, errors.New("login already taken")
	}
	m.nextUser++
	m.users[login] = memUser{id: m.nextUser, hash: password}
	return m.nextUser, nil
}

func (m *MemoryRepository) GetBylogin(_ context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (m *MemoryRepository) SaveAnalysis(_ context.Context, a Analysis) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRun++
	a.ID = m.nextRun
	a.CreatedAt = m.now()
	m.analyses = append(m.analyses, a)
	return a.ID, nil
}

func (m *MemoryRepository) ListAnalyses(_ context.Context, userID int) ([]AnalysisSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := []AnalysisSummary{}
	for _, a := range slices.Backward(m.analyses) {
		if a.UserID != userID {
			continue
		}
		list = append(list, AnalysisSummary{
			ID:           a.ID,
			Name:         a.Name,
			PullForceKN:  a.Result.EstimatedPullForceKN,
			IsSafe:       a.Result.IsSafe,
			WarningCount: len(a.Result.Warnings),
			CreatedAt:    a.CreatedAt,
		})
	}
	return list, nil
}

func (m *MemoryRepository) GetAnalysis(_ context.Context, userID, id int) (Analysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.analyses {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return Analysis{}, ErrNotFound
}
