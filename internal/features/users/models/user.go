package users_models

import (
	users_enums "importhub/internal/features/users/enums"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID              `json:"id"                gorm:"column:id;type:uuid;primaryKey"`
	Email                string                 `json:"email"             gorm:"column:email;uniqueIndex;not null"`
	Username             string                 `json:"username"          gorm:"column:username;uniqueIndex;not null"`
	HashedPassword       *string                `json:"-"                 gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"                 gorm:"column:password_creation_time"`
	IsPasswordAutoset    bool                   `json:"isPasswordAutoset" gorm:"column:is_password_autoset"`
	IsBot                bool                   `json:"isBot"             gorm:"column:is_bot"`
	Role                 users_enums.UserRole   `json:"role"              gorm:"column:role"`
	Status               users_enums.UserStatus `json:"status"            gorm:"column:status"`
	CreatedAt            time.Time              `json:"createdAt"         gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) CanManageInstance() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

// HasPassword is false for accounts whose password was generated by the
// system and never chosen by the user.
func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != "" && !u.IsPasswordAutoset
}
