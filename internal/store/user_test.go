package store

import (
	"testing"
	"time"

	perrors "github.com/abgdnv/catalog/internal/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frozenClock always reports the same instant.
func frozenClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}

// createTestUser is a helper function to create a user for testing purposes.
func createTestUser(t *testing.T, s *InMemoryUserStore, email string, role Role) *User {
	t.Helper()
	u, err := s.Create(UserCreate{Email: email, Name: "Test " + string(role), Role: role})
	require.NoError(t, err, "createTestUser helper failed to create user")
	return u
}

func Test_UserStore_Create(t *testing.T) {
	testCases := []struct {
		name        string
		existing    []string
		input       UserCreate
		expectError error
	}{
		{
			name:  "Success - user created",
			input: UserCreate{Email: "a@x.com", Name: "Alice", Role: RoleUser},
		},
		{
			name:        "Error - duplicate email",
			existing:    []string{"a@x.com"},
			input:       UserCreate{Email: "a@x.com", Name: "Another Alice", Role: RoleAdmin},
			expectError: perrors.ErrDuplicateKey,
		},
		{
			name:     "Success - email match is case-sensitive",
			existing: []string{"a@x.com"},
			input:    UserCreate{Email: "A@x.com", Name: "Upper Alice", Role: RoleUser},
		},
		{
			name:        "Error - empty email",
			input:       UserCreate{Email: "", Name: "Nobody", Role: RoleUser},
			expectError: perrors.ErrInvalidState,
		},
		{
			name:        "Error - unknown role",
			input:       UserCreate{Email: "b@x.com", Name: "Bob", Role: Role("root")},
			expectError: perrors.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewUserStore()
			for _, email := range tc.existing {
				createTestUser(t, s, email, RoleUser)
			}
			before := s.Len()
			// when
			created, err := s.Create(tc.input)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				assert.Equal(t, before, s.Len(), "collection size should be unchanged")
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.Equal(t, tc.input.Email, created.Email)
			assert.Equal(t, tc.input.Name, created.Name)
			assert.Equal(t, tc.input.Role, created.Role)
			assert.True(t, created.IsActive, "new users are active")
			assert.Equal(t, created.CreatedAt, created.UpdatedAt)
			assert.Equal(t, before+1, s.Len())
		})
	}
}

func Test_UserStore_DuplicateEmailLeavesFirstUserUntouched(t *testing.T) {
	// given
	s := NewUserStore()
	first := createTestUser(t, s, "a@x.com", RoleUser)

	// when
	_, err := s.Create(UserCreate{Email: "a@x.com", Name: "Imposter", Role: RoleAdmin})

	// then
	require.ErrorIs(t, err, perrors.ErrDuplicateKey)
	stored, err := s.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored)
	assert.Equal(t, 1, s.Len())
}

func Test_UserStore_FindByID(t *testing.T) {
	// given
	s := NewUserStore()
	created := createTestUser(t, s, "a@x.com", RoleUser)

	// when
	found, err := s.FindByID(created.ID)
	_, missingErr := s.FindByID(uuid.New())

	// then
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.ErrorIs(t, missingErr, perrors.ErrNotFound)
}

func Test_UserStore_FindByEmail(t *testing.T) {
	// given
	s := NewUserStore()
	created := createTestUser(t, s, "a@x.com", RoleUser)

	// when
	found, err := s.FindByEmail("a@x.com")
	_, missingErr := s.FindByEmail("A@X.COM")

	// then
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.ErrorIs(t, missingErr, perrors.ErrNotFound)
}

func Test_UserStore_Filters(t *testing.T) {
	// given
	s := NewUserStore()
	admin := createTestUser(t, s, "admin@x.com", RoleAdmin)
	user1 := createTestUser(t, s, "u1@x.com", RoleUser)
	user2 := createTestUser(t, s, "u2@x.com", RoleUser)
	_, err := s.Update(user1.ID, UserPatch{IsActive: ptr(false)})
	require.NoError(t, err)

	// when
	all := s.FindAll()
	users := s.FindByRole(RoleUser)
	guests := s.FindByRole(RoleGuest)
	active := s.FindActive()

	// then
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{admin.ID, user1.ID, user2.ID}, userIDs(all), "insertion order is preserved")
	assert.Equal(t, []uuid.UUID{user1.ID, user2.ID}, userIDs(users))
	assert.NotNil(t, guests)
	assert.Empty(t, guests)
	assert.Equal(t, []uuid.UUID{admin.ID, user2.ID}, userIDs(active))
}

func Test_UserStore_Update(t *testing.T) {
	testCases := []struct {
		name        string
		patch       UserPatch
		expectError error
		check       func(t *testing.T, before, after *User)
	}{
		{
			name:  "Success - name only",
			patch: UserPatch{Name: ptr("Renamed")},
			check: func(t *testing.T, before, after *User) {
				assert.Equal(t, "Renamed", after.Name)
				assert.Equal(t, before.Email, after.Email)
				assert.Equal(t, before.Role, after.Role)
				assert.Equal(t, before.IsActive, after.IsActive)
				assert.Equal(t, before.CreatedAt, after.CreatedAt)
			},
		},
		{
			name:  "Success - own email is not a duplicate",
			patch: UserPatch{Email: ptr("a@x.com"), Role: ptr(RoleAdmin)},
			check: func(t *testing.T, before, after *User) {
				assert.Equal(t, "a@x.com", after.Email)
				assert.Equal(t, RoleAdmin, after.Role)
			},
		},
		{
			name:  "Success - new free email",
			patch: UserPatch{Email: ptr("c@x.com")},
			check: func(t *testing.T, before, after *User) {
				assert.Equal(t, "c@x.com", after.Email)
			},
		},
		{
			name:        "Error - email held by another user",
			patch:       UserPatch{Email: ptr("b@x.com")},
			expectError: perrors.ErrDuplicateKey,
		},
		{
			name:        "Error - empty name",
			patch:       UserPatch{Name: ptr("  ")},
			expectError: perrors.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := NewUserStore(WithClock(frozenClock()))
			target := createTestUser(t, s, "a@x.com", RoleUser)
			createTestUser(t, s, "b@x.com", RoleUser)
			// when
			updated, err := s.Update(target.ID, tc.patch)
			// then
			stored, findErr := s.FindByID(target.ID)
			require.NoError(t, findErr)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				assert.Equal(t, target, stored, "failed update must not change the record")
				return
			}
			require.NoError(t, err)
			assert.True(t, updated.UpdatedAt.After(target.UpdatedAt), "updatedAt must advance even with a frozen clock")
			assert.Equal(t, updated, stored)
			tc.check(t, target, updated)
		})
	}
}

func Test_UserStore_UpdateReleasesOldEmail(t *testing.T) {
	// given
	s := NewUserStore()
	u := createTestUser(t, s, "old@x.com", RoleUser)

	// when
	_, err := s.Update(u.ID, UserPatch{Email: ptr("new@x.com")})
	require.NoError(t, err)
	other, createErr := s.Create(UserCreate{Email: "old@x.com", Name: "Second", Role: RoleGuest})

	// then
	require.NoError(t, createErr)
	assert.NotEqual(t, u.ID, other.ID)
	_, err = s.FindByEmail("new@x.com")
	assert.NoError(t, err)
}

func Test_UserStore_Delete(t *testing.T) {
	// given
	s := NewUserStore()
	u := createTestUser(t, s, "a@x.com", RoleUser)

	// when
	err := s.Delete(u.ID)

	// then
	require.NoError(t, err)
	_, err = s.FindByID(u.ID)
	assert.ErrorIs(t, err, perrors.ErrNotFound)
	_, err = s.Update(u.ID, UserPatch{Name: ptr("Ghost")})
	assert.ErrorIs(t, err, perrors.ErrNotFound)
	assert.ErrorIs(t, s.Delete(u.ID), perrors.ErrNotFound)
	_, err = s.Create(UserCreate{Email: "a@x.com", Name: "Reborn", Role: RoleUser})
	assert.NoError(t, err, "email is free again after delete")
}

func Test_UserStore_IDsAreNeverReused(t *testing.T) {
	// given
	fixed := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	next := uuid.MustParse("123e4567-e89b-12d3-a456-426614174001")
	calls := 0
	gen := func() uuid.UUID {
		calls++
		if calls <= 2 {
			return fixed
		}
		return next
	}
	s := NewUserStore(WithIDGenerator(gen))
	first := createTestUser(t, s, "a@x.com", RoleUser)
	require.NoError(t, s.Delete(first.ID))

	// when
	second := createTestUser(t, s, "b@x.com", RoleUser)

	// then
	assert.Equal(t, fixed, first.ID)
	assert.Equal(t, next, second.ID, "a retired id must not be issued again")
}

func Test_UserStore_ReturnsCopies(t *testing.T) {
	// given
	s := NewUserStore()
	created := createTestUser(t, s, "a@x.com", RoleUser)

	// when
	created.Email = "hacked@x.com"
	list := s.FindAll()
	list[0].Name = "Hacked"

	// then
	stored, err := s.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.NotEqual(t, "Hacked", stored.Name)
	_, err = s.FindByEmail("hacked@x.com")
	assert.ErrorIs(t, err, perrors.ErrNotFound)
}

func userIDs(users []User) []uuid.UUID {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
