package userRepo

import "adamosign/models"

// UserRepository defines persistence for account holders.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Delete(id string) error
}
