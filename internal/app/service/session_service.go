package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/domain/model"
	"github.com/Dishankaswal/CodeArena/internal/domain/repository"
	"github.com/Dishankaswal/CodeArena/internal/platform/config"

	"github.com/google/uuid"
)

// SessionStore is the durable side of the session manager. The Redis
// implementation lives in internal/platform/cache.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (userID string, ok bool, err error)
	Delete(ctx context.Context, sessionID string) error
	Publish(ctx context.Context, change model.SessionChange) error
	Subscribe(ctx context.Context) <-chan model.SessionChange
}

// SessionObserver receives the user of the changed session, or nil on
// sign-out.
type SessionObserver func(user *model.User)

// SessionManager tracks live sessions and notifies subscribers on every
// identity change. Protected handlers treat "no current user" as a required
// redirect to login.
type SessionManager struct {
	store    SessionStore
	userRepo repository.UserRepository

	mu        sync.Mutex
	observers []SessionObserver
}

func NewSessionManager(store SessionStore, userRepo repository.UserRepository) *SessionManager {
	return &SessionManager{store: store, userRepo: userRepo}
}

// Subscribe registers an observer. Per the session contract the handler is
// invoked immediately with the session resolved at startup, which for a fresh
// subscriber is none.
func (m *SessionManager) Subscribe(observer SessionObserver) {
	m.mu.Lock()
	m.observers = append(m.observers, observer)
	m.mu.Unlock()
	observer(nil)
}

func (m *SessionManager) notify(user *model.User) {
	m.mu.Lock()
	observers := make([]SessionObserver, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()
	for _, observer := range observers {
		observer(user)
	}
}

// Open records a new session for user and returns its id.
func (m *SessionManager) Open(ctx context.Context, user *model.User) (string, error) {
	sessionID := uuid.NewString()
	if err := m.store.Save(ctx, sessionID, user.ID, config.AppConfig.JWTExp); err != nil {
		return "", err
	}
	if err := m.store.Publish(ctx, model.SessionChange{SessionID: sessionID, UserID: user.ID, Active: true}); err != nil {
		log.Printf("WARN: failed to publish session open for %s: %v", sessionID, err)
	}
	m.notify(user)
	return sessionID, nil
}

// Current resolves the user behind a session id, or nil when the session is
// absent or expired. A missing session is a normal outcome, not an error.
func (m *SessionManager) Current(ctx context.Context, sessionID string) (*model.User, error) {
	userID, ok, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	user, err := m.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// SignOut terminates a session. It never fails: store errors are logged and
// the session is treated as cleared so the caller can always proceed.
func (m *SessionManager) SignOut(ctx context.Context, sessionID string) {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		log.Printf("ERROR: failed to delete session %s, clearing optimistically: %v", sessionID, err)
	}
	if err := m.store.Publish(ctx, model.SessionChange{SessionID: sessionID, Active: false}); err != nil {
		log.Printf("WARN: failed to publish session close for %s: %v", sessionID, err)
	}
	m.notify(nil)
}

// Listen forwards session changes published by other instances to local
// observers until ctx is cancelled.
func (m *SessionManager) Listen(ctx context.Context) {
	for change := range m.store.Subscribe(ctx) {
		if !change.Active {
			m.notify(nil)
			continue
		}
		user, err := m.userRepo.FindByID(ctx, change.UserID)
		if err != nil {
			log.Printf("WARN: session change for unknown user %s: %v", change.UserID, err)
			continue
		}
		user.HashedPassword = ""
		m.notify(user)
	}
}
