package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/models"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// Store persists quiz states by id.
type Store interface {
	Create(ctx context.Context, s *State) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*State, error)
	Save(ctx context.Context, id uuid.UUID, s *State) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CleanupExpired removes sessions idle for longer than the store TTL.
	CleanupExpired(ctx context.Context) (int, error)
}

// StartCleanupRoutine runs store.CleanupExpired every interval until ctx is done.
func StartCleanupRoutine(ctx context.Context, store Store, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := store.CleanupExpired(ctx)
				if err != nil {
					logging.Warn().Err(err).Msg("session cleanup failed")
					continue
				}
				if n > 0 {
					logging.Debug().Int("removed", n).Msg("expired sessions removed")
				}
			}
		}
	}()
}

// DBStore keeps sessions in the quiz_sessions table. A ttl <= 0 disables expiry.
type DBStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewDBStore(db *gorm.DB, ttl time.Duration) *DBStore {
	return &DBStore{db: db, ttl: ttl}
}

func (st *DBStore) Create(ctx context.Context, s *State) (uuid.UUID, error) {
	row, err := toRow(s)
	if err != nil {
		return uuid.Nil, err
	}
	if err := st.db.WithContext(ctx).Create(row).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create session: %w", err)
	}
	return row.ID, nil
}

func (st *DBStore) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	var row models.QuizSession
	if err := st.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if expired(row.UpdatedAt, st.ttl, time.Now()) {
		return nil, ErrNotFound
	}
	return fromRow(&row)
}

func (st *DBStore) Save(ctx context.Context, id uuid.UUID, s *State) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}
	res := st.db.WithContext(ctx).Model(&models.QuizSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"snapshot":        row.Snapshot,
			"recommendations": row.Recommendations,
		})
	if res.Error != nil {
		return fmt.Errorf("save session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (st *DBStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := st.db.WithContext(ctx).Delete(&models.QuizSession{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (st *DBStore) CleanupExpired(ctx context.Context) (int, error) {
	if st.ttl <= 0 {
		return 0, nil
	}
	res := st.db.WithContext(ctx).
		Where("updated_at < ?", time.Now().Add(-st.ttl)).
		Delete(&models.QuizSession{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func expired(updatedAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(updatedAt) > ttl
}

func toRow(s *State) (*models.QuizSession, error) {
	snap, err := json.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode session snapshot: %w", err)
	}
	recs := s.Recommendations
	if recs == nil {
		recs = []models.Recommendation{}
	}
	encoded, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode session recommendations: %w", err)
	}
	return &models.QuizSession{
		Snapshot:        datatypes.JSON(snap),
		Recommendations: datatypes.JSON(encoded),
	}, nil
}

func fromRow(row *models.QuizSession) (*State, error) {
	s := New()
	if len(row.Snapshot) > 0 {
		var snap Snapshot
		if err := json.Unmarshal(row.Snapshot, &snap); err != nil {
			return nil, fmt.Errorf("decode session snapshot: %w", err)
		}
		s.Restore(snap)
	}
	if len(row.Recommendations) > 0 {
		if err := json.Unmarshal(row.Recommendations, &s.Recommendations); err != nil {
			return nil, fmt.Errorf("decode session recommendations: %w", err)
		}
	}
	return s, nil
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer
// than ttl are treated as gone; a ttl <= 0 disables expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.QuizSession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*models.QuizSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *MemoryStore) Create(_ context.Context, s *State) (uuid.UUID, error) {
	row, err := toRow(s)
	if err != nil {
		return uuid.Nil, err
	}
	row.ID = uuid.New()
	row.CreatedAt = st.now()
	row.UpdatedAt = row.CreatedAt

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[row.ID] = row
	return row.ID, nil
}

func (st *MemoryStore) Get(_ context.Context, id uuid.UUID) (*State, error) {
	st.mu.RLock()
	row, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || expired(row.UpdatedAt, st.ttl, st.now()) {
		return nil, ErrNotFound
	}
	return fromRow(row)
}

func (st *MemoryStore) Save(_ context.Context, id uuid.UUID, s *State) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}
	row.ID = id

	st.mu.Lock()
	defer st.mu.Unlock()
	prev, ok := st.sessions[id]
	if !ok || expired(prev.UpdatedAt, st.ttl, st.now()) {
		return ErrNotFound
	}
	row.CreatedAt = prev.CreatedAt
	row.UpdatedAt = st.now()
	st.sessions[id] = row
	return nil
}

func (st *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	count := 0
	for id, row := range st.sessions {
		if expired(row.UpdatedAt, st.ttl, now) {
			delete(st.sessions, id)
			count++
		}
	}
	return count, nil
}

// Len returns the number of stored sessions, expired ones included.
func (st *MemoryStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
