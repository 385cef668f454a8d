package workspaces_models

import (
	"time"

	users_enums "importhub/internal/features/users/enums"

	"github.com/google/uuid"
)

type WorkspaceMember struct {
	ID          uuid.UUID              `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	WorkspaceID uuid.UUID              `json:"workspaceId" gorm:"column:workspace_id;type:uuid;uniqueIndex:idx_workspace_members_member"`
	MemberID    uuid.UUID              `json:"memberId"    gorm:"column:member_id;type:uuid;uniqueIndex:idx_workspace_members_member"`
	Role        users_enums.MemberRole `json:"role"        gorm:"column:role"`
	CreatedByID *uuid.UUID             `json:"createdById" gorm:"column:created_by_id;type:uuid"`
	CreatedAt   time.Time              `json:"createdAt"   gorm:"column:created_at"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}
