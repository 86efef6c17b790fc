package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  demo ", "password", "Demo Seller", "demo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
	assert.Nil(t, user.Avatar)

	_, err = NewUser("", "password", "Demo", "demo@example.com")
	assert.ErrorIs(t, err, ErrEmptyUsername)
	_, err = NewUser("demo", " ", "Demo", "demo@example.com")
	assert.ErrorIs(t, err, ErrEmptyPassword)
	_, err = NewUser("demo", "password", "", "demo@example.com")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewUser("demo", "password", "Demo", "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUpdateProfile_BlankAvatarClears(t *testing.T) {
	user, err := NewUser("demo", "password", "Demo", "demo@example.com")
	require.NoError(t, err)

	avatar := " https://example.com/a.png "
	require.NoError(t, user.UpdateProfile("Demo Seller", "seller@example.com", &avatar))
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "https://example.com/a.png", *user.Avatar)

	blank := "  "
	require.NoError(t, user.UpdateProfile("Demo Seller", "seller@example.com", &blank))
	assert.Nil(t, user.Avatar)

	assert.ErrorIs(t, user.UpdateProfile("Demo Seller", "nope", nil), ErrInvalidEmail)
	assert.Equal(t, "seller@example.com", user.Email)
}
