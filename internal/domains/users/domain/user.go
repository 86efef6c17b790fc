package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
)

// User is a seller operating the back-office. Every catalog entry, discount and order is
// owned by a user.
type User struct {
	ID       int64
	Username string
	Password string
	Name     string
	Email    string
	Avatar   *string
}

// NewUser builds a user ensuring required invariants.
func NewUser(username, password, name, email string) (*User, error) {
	user := &User{}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(name, email, nil); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetPassword stores the password as supplied. Only emptiness is rejected.
func (u *User) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	u.Password = password
	return nil
}

// UpdateProfile replaces the display fields. A blank avatar clears it.
func (u *User) UpdateProfile(name, email string, avatar *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Name = name
	u.Email = email
	u.Avatar = nil
	if avatar != nil {
		if trimmed := strings.TrimSpace(*avatar); trimmed != "" {
			u.Avatar = &trimmed
		}
	}
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.SetPassword(u.Password); err != nil {
		return err
	}
	return u.UpdateProfile(u.Name, u.Email, u.Avatar)
}
