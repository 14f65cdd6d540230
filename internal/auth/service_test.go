package auth

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar/internal/config"
	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/database/users"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	path := fmt.Sprintf("./test_auth_%s.db", t.Name())
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})

	return NewService(users.NewRepository(db.DB), config.Auth{BcryptCost: 4})
}

func TestSetupAndLogin(t *testing.T) {
	service := setupService(t)

	exists, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, exists)

	user, err := service.Setup("alice", "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)

	loggedIn, err := service.Login("alice", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestSetup_SecondTimeRefused(t *testing.T) {
	service := setupService(t)

	_, err := service.Setup("alice", "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	_, err = service.Setup("bob", "bob@example.com", "another-long-password")
	assert.ErrorIs(t, err, ErrSetupAlreadyDone)
}

func TestSetup_WeakPassword(t *testing.T) {
	service := setupService(t)

	_, err := service.Setup("alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin_WrongPassword(t *testing.T) {
	service := setupService(t)

	_, err := service.Setup("alice", "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)

	_, err = service.Login("alice", "incorrect-password-here")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	service := setupService(t)

	_, err := service.Login("nobody", "whatever-password-here")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_FederatedAccountHasNoPassword(t *testing.T) {
	service := setupService(t)

	user, err := service.LoginWithGoogle("google-sub-1", "carol", "carol@example.com", "")
	require.NoError(t, err)

	_, err = service.Login(user.Username, "any-password-at-all")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogle_ProvisionsOnce(t *testing.T) {
	service := setupService(t)

	first, err := service.LoginWithGoogle("google-sub-1", "carol", "carol@example.com", "pic.png")
	require.NoError(t, err)

	second, err := service.LoginWithGoogle("google-sub-1", "renamed", "other@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "carol", second.Username)
}
