package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id;type:uuid;index"`
	WorkspaceID *uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;type:uuid;index"`
	ProjectID   *uuid.UUID `json:"projectId"   gorm:"column:project_id;type:uuid"`
	Message     string     `json:"message"     gorm:"column:message"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
