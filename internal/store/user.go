package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	perrors "github.com/abgdnv/catalog/internal/errors"
	"github.com/google/uuid"
)

// Role is the access role of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleUser, RoleGuest}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// User represents a user record in the store.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCreate carries the fields required to create a user.
type UserCreate struct {
	Email string
	Name  string
	Role  Role
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Email    *string
	Name     *string
	Role     *Role
	IsActive *bool
}

// InMemoryUserStore implements UserStore using an in-memory arena with an email index.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   collection[User]
	byEmail map[string]uuid.UUID
	cfg     settings
}

var _ UserStore = (*InMemoryUserStore)(nil)

// NewUserStore creates an empty user store.
func NewUserStore(opts ...Option) *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   newCollection[User](),
		byEmail: make(map[string]uuid.UUID),
		cfg:     newSettings(opts),
	}
}

// FindAll retrieves all users.
func (s *InMemoryUserStore) FindAll() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.filter(nil)
}

// FindByID retrieves a user by its ID.
func (s *InMemoryUserStore) FindByID(id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: user %s", perrors.ErrNotFound, id)
	}
	return &u, nil
}

// FindByEmail retrieves a user by email.
func (s *InMemoryUserStore) FindByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%w: user with email %q", perrors.ErrNotFound, email)
	}
	u, _ := s.users.get(id)
	return &u, nil
}

// FindByRole retrieves users by role.
func (s *InMemoryUserStore) FindByRole(role Role) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.filter(func(u User) bool { return u.Role == role })
}

// FindActive retrieves active users.
func (s *InMemoryUserStore) FindActive() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.filter(func(u User) bool { return u.IsActive })
}

// Create creates a new user and returns it.
func (s *InMemoryUserStore) Create(input UserCreate) (*User, error) {
	if err := checkUserFields(&input.Email, &input.Name, &input.Role); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[input.Email]; taken {
		return nil, fmt.Errorf("%w: user with email %q already exists", perrors.ErrDuplicateKey, input.Email)
	}

	now := s.cfg.now()
	u := User{
		ID:        s.users.issue(s.cfg.newID),
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users.insert(u.ID, u)
	s.byEmail[u.Email] = u.ID

	return &u, nil
}

// Update applies patch to the user with the given ID and returns the result.
func (s *InMemoryUserStore) Update(id uuid.UUID, patch UserPatch) (*User, error) {
	if err := checkUserFields(patch.Email, patch.Name, patch.Role); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: user %s", perrors.ErrNotFound, id)
	}

	oldEmail := u.Email
	if patch.Email != nil && *patch.Email != oldEmail {
		if _, taken := s.byEmail[*patch.Email]; taken {
			return nil, fmt.Errorf("%w: user with email %q already exists", perrors.ErrDuplicateKey, *patch.Email)
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	u.UpdatedAt = s.cfg.touch(u.UpdatedAt)

	if u.Email != oldEmail {
		delete(s.byEmail, oldEmail)
		s.byEmail[u.Email] = id
	}
	s.users.replace(id, u)

	return &u, nil
}

// Delete deletes a user by its ID.
func (s *InMemoryUserStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.remove(id)
	if !ok {
		return fmt.Errorf("%w: user %s", perrors.ErrNotFound, id)
	}
	delete(s.byEmail, u.Email)
	return nil
}

// Len returns the number of users.
func (s *InMemoryUserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.len()
}

// checkUserFields rejects values that must never reach a committed record.
// Nil pointers are fields absent from a patch.
func checkUserFields(email, name *string, role *Role) error {
	if email != nil && strings.TrimSpace(*email) == "" {
		return fmt.Errorf("%w: user email must not be empty", perrors.ErrInvalidState)
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: user name must not be empty", perrors.ErrInvalidState)
	}
	if role != nil && !role.Valid() {
		return fmt.Errorf("%w: unknown user role %q", perrors.ErrInvalidState, *role)
	}
	return nil
}
