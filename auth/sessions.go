package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

const (
	SessionLifetime = 72 * time.Hour
	cleanupInterval = time.Hour
)

type SessionStore struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewSessionStore() *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*models.Session),
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go store.cleanupExpiredSessions(cleanupInterval)

	return store
}

func (s *SessionStore) CreateSession(user *models.User) (*models.Session, error) {
	sessionID, err := utils.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionLifetime),
	}

	s.sessions[sessionID] = session
	return session, nil
}

func (s *SessionStore) GetSession(sessionID string) (*models.Session, bool) {
	s.mutex.RLock()
	session, exists := s.sessions[sessionID]
	s.mutex.RUnlock()
	if !exists {
		return nil, false
	}

	if s.now().After(session.ExpiresAt) {
		s.DeleteSession(sessionID)
		return nil, false
	}

	return session, true
}

func (s *SessionStore) DeleteSession(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, sessionID)
}

func (s *SessionStore) DeleteUserSessions(userID int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
}

// Close stops the cleanup goroutine. Sessions stay readable.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *SessionStore) removeExpired() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	cleaned := 0
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			cleaned++
		}
	}
	return cleaned
}

func (s *SessionStore) cleanupExpiredSessions(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.removeExpired(); cleaned > 0 {
				utils.LogInfo("Cleaned up %d expired sessions", cleaned)
			}
		case <-s.stop:
			return
		}
	}
}
