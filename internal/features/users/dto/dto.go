package users_dto

import (
	"time"

	users_enums "importhub/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type SetAdminPasswordRequestDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type IsAdminHasPasswordResponseDTO struct {
	HasPassword bool `json:"hasPassword"`
}

type UserProfileResponseDTO struct {
	ID                uuid.UUID            `json:"id"`
	Email             string               `json:"email"`
	Username          string               `json:"username"`
	Role              users_enums.UserRole `json:"role"`
	IsActive          bool                 `json:"isActive"`
	IsPasswordAutoset bool                 `json:"isPasswordAutoset"`
	CreatedAt         time.Time            `json:"createdAt"`
}
