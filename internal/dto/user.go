package dto

import (
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// UserDTO represents a user in API responses. The password hash and billing
// references never leave the server.
type UserDTO struct {
	ID                uint64          `json:"id"`
	Email             string          `json:"email"`
	Username          string          `json:"username"`
	FirstName         string          `json:"first_name,omitempty"`
	LastName          string          `json:"last_name,omitempty"`
	Role              models.UserRole `json:"role"`
	AvatarURL         string          `json:"avatar_url,omitempty"`
	ContactPreference string          `json:"contact_preference,omitempty"`
	ContactValue      string          `json:"contact_value,omitempty"`
}

// PublicUserDTO is the reduced shape shown to other users.
type PublicUserDTO struct {
	ID        uint64          `json:"id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	AvatarURL string          `json:"avatar_url,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Email:             user.Email,
		Username:          user.Username,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Role:              user.Role,
		AvatarURL:         user.AvatarURL,
		ContactPreference: user.ContactPreference,
		ContactValue:      user.ContactValue,
	}
}

// ToPublicUserDTO converts a User model to PublicUserDTO
func ToPublicUserDTO(user models.User) PublicUserDTO {
	return PublicUserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
	}
}
