// Package session holds the client's mocked authentication: the auth form
// reducer, the local user directory and the persisted current session.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrNoSession means nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Session is one login of one user.
type Session struct {
	ID        string    `yaml:"id"`
	User      User      `yaml:"user"`
	CreatedAt time.Time `yaml:"created_at"`
}

// New starts a session for user.
func New(user User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
}

type sessionKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session carried by ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// Store persists the single current session as <dir>/session.yaml.
type Store struct {
	path string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.yaml")}
}

// Load returns the saved session, or ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if sess.ID == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save replaces the current session.
func (s *Store) Save(sess *Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return writeFile(s.path, data)
}

// Clear removes the current session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Manager ties the directory to the session store.
type Manager struct {
	directory *Directory
	store     *Store
}

// NewManager creates a manager.
func NewManager(directory *Directory, store *Store) *Manager {
	return &Manager{directory: directory, store: store}
}

// Submit logs in or signs up depending on which form is active, and saves
// the new session.
func (m *Manager) Submit(form AuthForm) (*Session, error) {
	var (
		user User
		err  error
	)
	switch f := form.(type) {
	case LoginState:
		user, err = m.directory.Login(f)
	case SignupState:
		user, err = m.directory.Signup(f)
	default:
		return nil, fmt.Errorf("unknown auth form %T", form)
	}
	if err != nil {
		return nil, err
	}

	sess := New(user)
	if err := m.store.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Current returns the saved session, or ErrNoSession.
func (m *Manager) Current() (*Session, error) {
	return m.store.Load()
}

// Logout destroys the current session.
func (m *Manager) Logout() error {
	return m.store.Clear()
}
