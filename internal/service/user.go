package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abgdnv/catalog/internal/store"
	"github.com/abgdnv/catalog/pkg/messaging/events"
	"github.com/google/uuid"
)

const usersCollection = string(events.CollectionUsers)

// UserService defines the methods for managing users.
type UserService interface {
	// FindAll returns all users in creation order.
	FindAll(ctx context.Context) ([]UserDto, error)

	// FindByRole returns the users holding role.
	FindByRole(ctx context.Context, role store.Role) ([]UserDto, error)

	// FindActive returns the active users.
	FindActive(ctx context.Context) ([]UserDto, error)

	// FindByID retrieves a single user by its unique identifier.
	// Returns ErrNotFound if no user exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*UserDto, error)

	// FindByEmail retrieves a single user by email.
	// Returns ErrNotFound if no user holds the email.
	FindByEmail(ctx context.Context, email string) (*UserDto, error)

	// Create adds a new user to the system.
	// Returns ErrDuplicateKey if the email is already taken.
	Create(ctx context.Context, user UserCreateDto) (*UserDto, error)

	// Update merges the present fields into an existing user.
	// Returns ErrNotFound for an unknown ID and ErrDuplicateKey for a taken email.
	Update(ctx context.Context, id uuid.UUID, user UserUpdateDto) (*UserDto, error)

	// Delete removes a user by its ID.
	// Returns ErrNotFound if no user exists with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserDto represents the data transfer object for a user.
type UserDto struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserCreateDto represents the data transfer object for creating a new user.
type UserCreateDto struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required,min=2"`
	Role  string `json:"role"  validate:"required,oneof=admin user guest"`
}

// UserUpdateDto represents the data transfer object for a partial user update.
// Absent fields are left untouched.
type UserUpdateDto struct {
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=2"`
	Role     *string `json:"role,omitempty"     validate:"omitempty,oneof=admin user guest"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// Users implements UserService on top of a store.UserStore.
type Users struct {
	repository store.UserStore
	observer   *Observer
}

var _ UserService = (*Users)(nil)

// NewUserService creates a new instance of UserService with the provided repository.
func NewUserService(repo store.UserStore, observer *Observer) *Users {
	if observer == nil {
		observer = NewObserver(nil, nil, nil)
	}
	return &Users{
		repository: repo,
		observer:   observer,
	}
}

// FindAll retrieves all users and returns them as UserDTOs.
func (s *Users) FindAll(ctx context.Context) ([]UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := s.repository.FindAll()
	s.observer.observe(usersCollection, "find_all", nil)
	return toUserDtos(users), nil
}

// FindByRole retrieves the users with the given role.
func (s *Users) FindByRole(ctx context.Context, role store.Role) ([]UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := s.repository.FindByRole(role)
	s.observer.observe(usersCollection, "find_by_role", nil)
	return toUserDtos(users), nil
}

// FindActive retrieves the active users.
func (s *Users) FindActive(ctx context.Context) ([]UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := s.repository.FindActive()
	s.observer.observe(usersCollection, "find_active", nil)
	return toUserDtos(users), nil
}

// FindByID retrieves a user by its ID and returns it as a UserDto.
func (s *Users) FindByID(ctx context.Context, id uuid.UUID) (*UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, err := s.repository.FindByID(id)
	s.observer.observe(usersCollection, "find_by_id", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by ID %s: %w", id, err)
	}
	return toUserDto(user), nil
}

// FindByEmail retrieves a user by email and returns it as a UserDto.
func (s *Users) FindByEmail(ctx context.Context, email string) (*UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, err := s.repository.FindByEmail(email)
	s.observer.observe(usersCollection, "find_by_email", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return toUserDto(user), nil
}

// Create creates a new user and returns it as a UserDto.
func (s *Users) Create(ctx context.Context, user UserCreateDto) (*UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	created, err := s.repository.Create(store.UserCreate{
		Email: user.Email,
		Name:  user.Name,
		Role:  store.Role(user.Role),
	})
	s.observer.observe(usersCollection, "create", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.observer.recorder.SetRecords(usersCollection, s.repository.Len())

	dto := toUserDto(created)
	s.observer.publish(ctx, events.RecordEvent{
		Collection: events.CollectionUsers,
		Action:     events.ActionCreated,
		ID:         created.ID,
		Record:     dto,
		OccurredAt: created.CreatedAt,
	})
	return dto, nil
}

// Update merges the present fields of user into the stored user and returns the result.
func (s *Users) Update(ctx context.Context, id uuid.UUID, user UserUpdateDto) (*UserDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	patch := store.UserPatch{
		Email:    user.Email,
		Name:     user.Name,
		IsActive: user.IsActive,
	}
	if user.Role != nil {
		role := store.Role(*user.Role)
		patch.Role = &role
	}
	updated, err := s.repository.Update(id, patch)
	s.observer.observe(usersCollection, "update", err)
	if err != nil {
		return nil, fmt.Errorf("failed to update user with ID %s: %w", id, err)
	}

	dto := toUserDto(updated)
	s.observer.publish(ctx, events.RecordEvent{
		Collection: events.CollectionUsers,
		Action:     events.ActionUpdated,
		ID:         updated.ID,
		Record:     dto,
		OccurredAt: updated.UpdatedAt,
	})
	return dto, nil
}

// Delete deletes a user by its ID.
func (s *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.repository.Delete(id)
	s.observer.observe(usersCollection, "delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete user with ID %s: %w", id, err)
	}
	s.observer.recorder.SetRecords(usersCollection, s.repository.Len())

	s.observer.publish(ctx, events.RecordEvent{
		Collection: events.CollectionUsers,
		Action:     events.ActionDeleted,
		ID:         id,
		OccurredAt: time.Now(),
	})
	return nil
}

// toUserDto converts a store.User to a UserDto.
func toUserDto(user *store.User) *UserDto {
	return &UserDto{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserDtos(users []store.User) []UserDto {
	dtos := make([]UserDto, len(users))
	for i := range users {
		dtos[i] = *toUserDto(&users[i])
	}
	return dtos
}
