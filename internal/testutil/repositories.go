package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nest/internal/models"
)

// MemoryEmotionRepository stores records in insertion order.
type MemoryEmotionRepository struct {
	mu      sync.Mutex
	Records []*models.EmotionRecord
	Err     error
	Lists   int
}

func (r *MemoryEmotionRepository) Create(_ context.Context, rec *models.EmotionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	rec.ID = int64(len(r.Records) + 1)
	r.Records = append(r.Records, rec)
	return nil
}

func (r *MemoryEmotionRepository) ListByUser(_ context.Context, userID int64, start, end *time.Time) ([]*models.EmotionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lists++
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.EmotionRecord
	for _, rec := range r.Records {
		if rec.UserID != userID {
			continue
		}
		if start != nil && rec.Timestamp.Before(*start) {
			continue
		}
		if end != nil && rec.Timestamp.After(*end) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type MemoryUserRepository struct {
	mu    sync.Mutex
	Users map[int64]*models.User
}

func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Users == nil {
		r.Users = make(map[int64]*models.User)
	}
	for _, existing := range r.Users {
		if existing.Username == u.Username {
			return fmt.Errorf("create user: %w", models.ErrConflict)
		}
	}
	u.ID = int64(len(r.Users) + 1)
	u.CreatedAt = time.Now().UTC()
	r.Users[u.ID] = u
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", models.ErrNotFound)
	}
	return u, nil
}

type MemoryMeditationRepository struct {
	mu       sync.Mutex
	Sessions map[string]*models.MeditationSession
}

func (r *MemoryMeditationRepository) Create(_ context.Context, s *models.MeditationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Sessions == nil {
		r.Sessions = make(map[string]*models.MeditationSession)
	}
	if _, ok := r.Sessions[s.SessionID]; ok {
		return fmt.Errorf("create meditation session: %w", models.ErrConflict)
	}
	s.ID = int64(len(r.Sessions) + 1)
	cp := *s
	r.Sessions[s.SessionID] = &cp
	return nil
}

func (r *MemoryMeditationRepository) GetBySessionID(_ context.Context, id string) (*models.MeditationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Sessions[id]
	if !ok {
		return nil, fmt.Errorf("get meditation session: %w", models.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryMeditationRepository) Complete(_ context.Context, s *models.MeditationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.Sessions[s.SessionID]
	if !ok || stored.Status != models.SessionInProgress {
		return fmt.Errorf("complete meditation session: %w", models.ErrSessionCompleted)
	}
	cp := *s
	r.Sessions[s.SessionID] = &cp
	return nil
}

type MemoryChatRepository struct {
	mu       sync.Mutex
	Sessions map[int64]*models.ChatSession
	Messages []*models.ChatMessage
}

func (r *MemoryChatRepository) CreateSession(_ context.Context, userID int64) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Sessions == nil {
		r.Sessions = make(map[int64]*models.ChatSession)
	}
	s := &models.ChatSession{ID: int64(len(r.Sessions) + 1), UserID: userID, StartTime: time.Now().UTC(), SessionType: models.ChatSessionAI}
	r.Sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (r *MemoryChatRepository) GetSession(_ context.Context, id int64) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Sessions[id]
	if !ok {
		return nil, fmt.Errorf("get chat session: %w", models.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryChatRepository) EndSession(_ context.Context, id int64, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Sessions[id]
	if !ok || s.EndTime != nil {
		return fmt.Errorf("end chat session: %w", models.ErrConflict)
	}
	s.EndTime = &end
	return nil
}

func (r *MemoryChatRepository) AddMessage(_ context.Context, m *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = int64(len(r.Messages) + 1)
	r.Messages = append(r.Messages, m)
	return nil
}

func (r *MemoryChatRepository) ListMessages(_ context.Context, sessionID int64) ([]*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ChatMessage
	for _, m := range r.Messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

// MemoryArchive records archived transcripts.
type MemoryArchive struct {
	mu          sync.Mutex
	Transcripts []*models.ChatTranscript
	Err         error
}

func (a *MemoryArchive) Archive(_ context.Context, t *models.ChatTranscript) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Transcripts = append(a.Transcripts, t)
	return nil
}

func (a *MemoryArchive) FindBySession(_ context.Context, sessionID int64) (*models.ChatTranscript, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range a.Transcripts {
		if t.SessionID == sessionID {
			return t, nil
		}
	}
	return nil, fmt.Errorf("transcript %d: %w", sessionID, models.ErrNotFound)
}

// MapCache is an in-memory CacheProviderInterface.
type MapCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func (c *MapCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.Data[key]
	return v, ok
}

func (c *MapCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Data == nil {
		c.Data = make(map[string][]byte)
	}
	c.Data[key] = value
}
