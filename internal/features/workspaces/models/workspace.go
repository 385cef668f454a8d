package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name;not null"`
	Slug      string    `json:"slug"      gorm:"column:slug;uniqueIndex;not null"`
	OwnerID   uuid.UUID `json:"ownerId"   gorm:"column:owner_id;type:uuid"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
