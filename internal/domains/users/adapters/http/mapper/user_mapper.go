package mapper

import (
	userdomain "github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	userports "github.com/Apurer/shop-backoffice/internal/domains/users/ports"
	"github.com/Apurer/shop-backoffice/internal/shared/patch"
)

// User is the transport-level user payload. The password never leaves the server.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`
}

type UserInput struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`
}

type ProfileUpdate struct {
	Name   *string                `json:"name"`
	Email  *string                `json:"email"`
	Avatar patch.Nullable[string] `json:"avatar"`
}

func ToDomainUser(in UserInput) userdomain.User {
	return userdomain.User{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
		Avatar:   in.Avatar,
	}
}

func ToProfileUpdate(in ProfileUpdate) userports.ProfileUpdate {
	return userports.ProfileUpdate{Name: in.Name, Email: in.Email, Avatar: in.Avatar}
}

func FromDomainUser(u *userdomain.User) User {
	if u == nil {
		return User{}
	}
	return User{ID: u.ID, Username: u.Username, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}
