package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Username: "student", Password: string(hash)}

	// Act & Assert
	assert.True(t, user.CheckPassword("secret123"), "верный пароль должен проходить проверку")
	assert.False(t, user.CheckPassword("wrong"), "неверный пароль не должен проходить проверку")
}

func TestUser_BeforeSave_HashesPlainPassword(t *testing.T) {
	// Arrange
	user := &User{Username: "student", Password: "plain-password"}

	// Act
	err := user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, "plain-password", user.Password, "пароль должен быть захеширован")
	assert.True(t, user.CheckPassword("plain-password"))
}

func TestUser_BeforeSave_SkipsExistingHash(t *testing.T) {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Username: "student", Password: string(hash)}

	// Act
	err = user.BeforeSave(nil)

	// Assert: повторного хеширования быть не должно
	require.NoError(t, err)
	assert.Equal(t, string(hash), user.Password)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
