// Package store provides the in-memory record stores for users and products.
//
// Each store owns its collection exclusively. Reads run concurrently under a shared
// lock; every write holds the exclusive lock for its whole check-then-act sequence,
// so uniqueness checks and stock adjustments cannot interleave. Records are returned
// by value and callers cannot reach the stored copies.
package store

import (
	"time"

	"github.com/google/uuid"
)

// UserStore is an interface for user storage operations.
type UserStore interface {
	// FindAll returns all users in insertion order.
	// Returns an empty slice if no users exist.
	FindAll() []User

	// FindByID retrieves a single user by its unique identifier.
	// Returns ErrNotFound if no user exists with the given ID.
	FindByID(id uuid.UUID) (*User, error)

	// FindByEmail retrieves a single user by email (exact, case-sensitive match).
	// Returns ErrNotFound if no user holds the email.
	FindByEmail(email string) (*User, error)

	// FindByRole returns the users with the given role.
	FindByRole(role Role) []User

	// FindActive returns the users with IsActive set.
	FindActive() []User

	// Create adds a new active user.
	// Returns ErrDuplicateKey if the email is already taken.
	Create(input UserCreate) (*User, error)

	// Update merges the present fields of patch into the user.
	// Returns ErrNotFound for an unknown ID and ErrDuplicateKey if another user holds the new email.
	Update(id uuid.UUID, patch UserPatch) (*User, error)

	// Delete removes a user permanently.
	// Returns ErrNotFound if no user exists with the given ID.
	Delete(id uuid.UUID) error

	// Len returns the number of live users.
	Len() int
}

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// FindAll returns all products in insertion order.
	FindAll() []Product

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrNotFound if no product exists with the given ID.
	FindByID(id uuid.UUID) (*Product, error)

	// FindBySku retrieves a single product by SKU.
	// Returns ErrNotFound if no product holds the SKU.
	FindBySku(sku string) (*Product, error)

	// FindByCategory returns the products in the given category.
	FindByCategory(category Category) []Product

	// Search returns the products whose name or description contains text, ignoring case.
	Search(text string) []Product

	// FindAvailable returns the products that are flagged available and have stock.
	FindAvailable() []Product

	// Create adds a new available product.
	// Returns ErrDuplicateKey if the SKU is already taken.
	Create(input ProductCreate) (*Product, error)

	// Update merges the present fields of patch into the product.
	// Returns ErrNotFound for an unknown ID and ErrDuplicateKey if another product holds the new SKU.
	Update(id uuid.UUID, patch ProductPatch) (*Product, error)

	// UpdateStock adds delta to the product stock and recomputes availability.
	// Returns ErrInsufficientStock, leaving the product untouched, if the result would be negative.
	UpdateStock(id uuid.UUID, delta int) (*Product, error)

	// Delete removes a product permanently.
	// Returns ErrNotFound if no product exists with the given ID.
	Delete(id uuid.UUID) error

	// Len returns the number of live products.
	Len() int
}

// Option configures a store.
type Option func(*settings)

type settings struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// WithClock replaces the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator used for record identifiers.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *settings) {
		s.newID = newID
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// touch returns the next UpdatedAt value, strictly after prev.
func (s settings) touch(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
