package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.activities)

	_, err := svc.Create(CreateUserRequest{Username: "admin", Email: "admin@bioguide.edu", Password: "secret123", Role: "super_admin"})
	require.NoError(t, err)

	_, err = svc.Create(CreateUserRequest{Username: "admin", Email: "other@bioguide.edu", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Create(CreateUserRequest{Username: "other", Email: "admin@bioguide.edu", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.activities)

	user, err := svc.Create(CreateUserRequest{Username: "helper", Email: "helper@bioguide.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "chapter_admin", user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, user.CheckPassword("secret123"))
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.activities)
	u := env.addUser(t, "editor", "chapter_admin", nil)

	updated, err := svc.Update(u.ID, UpdateUserRequest{Username: "editor", Email: "new@bioguide.edu", Role: "chapter_admin"})
	require.NoError(t, err)
	assert.Equal(t, "new@bioguide.edu", updated.Email)
	assert.True(t, updated.CheckPassword("secret123"))
}

func TestToggleStatusFlips(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.activities)
	u := env.addUser(t, "editor", "chapter_admin", nil)

	active, err := svc.ToggleStatus(u.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleStatus(u.ID)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = svc.ToggleStatus(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfilePasswordRules(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.activities)
	u := env.addUser(t, "editor", "chapter_admin", nil)

	_, err := svc.UpdateProfile(u.ID, UpdateProfileRequest{
		Email: u.Email, CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.UpdateProfile(u.ID, UpdateProfileRequest{
		Email: u.Email, CurrentPassword: "secret123", NewPassword: "newpass1", ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	updated, err := svc.UpdateProfile(u.ID, UpdateProfileRequest{
		Email: u.Email, CurrentPassword: "secret123", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("newpass1"))
}
