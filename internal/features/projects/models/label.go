package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type Label struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	ProjectID   uuid.UUID `json:"projectId"   gorm:"column:project_id;type:uuid;uniqueIndex:idx_labels_project_name"`
	Name        string    `json:"name"        gorm:"column:name;uniqueIndex:idx_labels_project_name"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;type:uuid"`
	Description string    `json:"description" gorm:"column:description"`
	Color       string    `json:"color"       gorm:"column:color"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Label) TableName() string {
	return "labels"
}
