package workspaces_dto

import (
	"time"

	users_enums "importhub/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=80"`
	Slug string `json:"slug" binding:"required,min=1,max=48"`
}

type WorkspaceResponseDTO struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id"`
	Name      string                  `json:"name"      gorm:"column:name"`
	Slug      string                  `json:"slug"      gorm:"column:slug"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
	UserRole  *users_enums.MemberRole `json:"userRole"  gorm:"column:user_role"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceResponseDTO `json:"workspaces"`
}
