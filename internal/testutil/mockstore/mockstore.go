// Package mockstore provides an in-memory Store implementation for tests.
package mockstore

import (
	"context"
	"sync"
	"time"

	"github.com/acsops/acs-console/internal/store"
)

// MockStore implements store.Store with in-memory maps.
// The zero value is not usable; call New.
type MockStore struct {
	mu          sync.Mutex
	users       map[string]*store.User
	permissions map[string]*store.Permission
	config      *store.ConsoleConfig

	// FailWith, when set, makes every operation return this error.
	// Used to simulate an unreachable document store.
	FailWith error
}

// New creates an empty MockStore.
func New() *MockStore {
	return &MockStore{
		users:       make(map[string]*store.User),
		permissions: make(map[string]*store.Permission),
	}
}

func (m *MockStore) GetUser(_ context.Context, username string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	u, ok := m.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockStore) CreateUser(_ context.Context, u *store.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.users[u.Username]; ok {
		return store.ErrDuplicate
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *MockStore) ListUsers(_ context.Context) ([]*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	users := []*store.User{}
	for _, u := range m.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (m *MockStore) UpdateUserRole(_ context.Context, username, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	u, ok := m.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *MockStore) UpdateUserPassword(_ context.Context, username string, hash, salt []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	u, ok := m.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = hash
	u.Salt = salt
	return nil
}

func (m *MockStore) DeleteUser(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.users[username]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, username)
	return nil
}

func (m *MockStore) CreatePermission(_ context.Context, p *store.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if p.ID == "" {
		p.ID = p.DefaultID()
	}
	if _, ok := m.permissions[p.ID]; ok {
		return store.ErrDuplicate
	}
	cp := *p
	m.permissions[p.ID] = &cp
	return nil
}

func (m *MockStore) ListPermissions(_ context.Context) ([]*store.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	perms := []*store.Permission{}
	for _, p := range m.permissions {
		cp := *p
		perms = append(perms, &cp)
	}
	return perms, nil
}

func (m *MockStore) ListPermissionsByRole(_ context.Context, role string) ([]*store.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	perms := []*store.Permission{}
	for _, p := range m.permissions {
		if p.Role == role {
			cp := *p
			perms = append(perms, &cp)
		}
	}
	return perms, nil
}

func (m *MockStore) DeletePermission(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.permissions[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.permissions, id)
	return nil
}

func (m *MockStore) GetConfig(_ context.Context) (*store.ConsoleConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if m.config == nil {
		m.config = store.DefaultConsoleConfig()
	}
	cp := *m.config
	return &cp, nil
}

func (m *MockStore) PutConfig(_ context.Context, cfg *store.ConsoleConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	cp := *cfg
	m.config = &cp
	return nil
}

func (m *MockStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FailWith
}

func (m *MockStore) Close(_ context.Context) error {
	return nil
}
