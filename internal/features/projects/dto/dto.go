package projects_dto

import (
	"time"

	users_enums "importhub/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name       string `json:"name"       binding:"required,min=1,max=255"`
	Identifier string `json:"identifier" binding:"required,min=1,max=12"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Name        string    `json:"name"`
	Identifier  string    `json:"identifier"`
	CreatedAt   time.Time `json:"createdAt"`

	UserRole *users_enums.MemberRole `json:"userRole,omitempty"`
}

// Membership DTOs
type ProjectMemberResponseDTO struct {
	ID        uuid.UUID              `json:"id"        gorm:"column:id"`
	MemberID  uuid.UUID              `json:"memberId"  gorm:"column:member_id"`
	Email     string                 `json:"email"     gorm:"column:email"`
	IsBot     bool                   `json:"isBot"     gorm:"column:is_bot"`
	Role      users_enums.MemberRole `json:"role"      gorm:"column:role"`
	CreatedAt time.Time              `json:"createdAt" gorm:"column:created_at"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}
