package projects_models

import (
	"time"

	users_enums "importhub/internal/features/users/enums"

	"github.com/google/uuid"
)

type ProjectMember struct {
	ID          uuid.UUID              `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	ProjectID   uuid.UUID              `json:"projectId"   gorm:"column:project_id;type:uuid;uniqueIndex:idx_project_members_member"`
	MemberID    uuid.UUID              `json:"memberId"    gorm:"column:member_id;type:uuid;uniqueIndex:idx_project_members_member"`
	WorkspaceID uuid.UUID              `json:"workspaceId" gorm:"column:workspace_id;type:uuid"`
	Role        users_enums.MemberRole `json:"role"        gorm:"column:role"`
	CreatedByID *uuid.UUID             `json:"createdById" gorm:"column:created_by_id;type:uuid"`
	CreatedAt   time.Time              `json:"createdAt"   gorm:"column:created_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
