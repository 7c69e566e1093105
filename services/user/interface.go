package user

import (
	userRepo "adamosign/database/repository/user"
	"adamosign/models"
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is returned on successful registration or sign-in.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages accounts and their auth tokens.
type UserService interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	RevokeAuthToken(userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
