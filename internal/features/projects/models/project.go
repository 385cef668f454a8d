package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;type:uuid;index"`
	Name        string    `json:"name"        gorm:"column:name;not null"`
	Identifier  string    `json:"identifier"  gorm:"column:identifier;not null"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Project) TableName() string {
	return "projects"
}
