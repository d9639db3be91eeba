package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libris/internal/config"
	"libris/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	// MinCost keeps the bcrypt work factor out of the test runtime.
	service := NewService(db, config.Auth{BcryptCost: bcrypt.MinCost})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func TestService_CreateUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.CreateUser("librarian", "password123", false)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "librarian", user.Username)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestService_CreateUser_Validation(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("", "password123", false)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = service.CreateUser("librarian", "", false)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = service.CreateUser("ab", "password123", false)
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = service.CreateUser("bad user!", "password123", false)
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = service.CreateUser("librarian", "short", false)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_CreateUser_Duplicate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("librarian", "password123", false)
	require.NoError(t, err)

	_, err = service.CreateUser("librarian", "password456", false)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Authenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	created, err := service.CreateUser("librarian", "password123", true)
	require.NoError(t, err)

	user, err := service.Authenticate("librarian", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.True(t, user.IsAdmin)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("librarian", "password123", false)
	require.NoError(t, err)

	_, err = service.Authenticate("librarian", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.Authenticate("nobody", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetUserByID(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	created, err := service.CreateUser("librarian", "password123", false)
	require.NoError(t, err)

	user, err := service.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "librarian", user.Username)

	_, err = service.GetUserByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_HasUsers(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	has, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.CreateUser("librarian", "password123", false)
	require.NoError(t, err)

	has, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}
