package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccessStampsLastLogin(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "super_admin", nil)

	svc := NewAuthService(env.users)
	user, err := svc.Login("admin", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)

	stored, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "super_admin", nil)

	svc := NewAuthService(env.users)
	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "admin", "super_admin", nil)
	u.IsActive = false
	require.NoError(t, env.users.Save(u))

	svc := NewAuthService(env.users)
	_, err := svc.Login("admin", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
