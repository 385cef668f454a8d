package integrations_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GithubRepository struct {
	ID           uuid.UUID      `json:"id"           gorm:"column:id;type:uuid;primaryKey"`
	ProjectID    uuid.UUID      `json:"projectId"    gorm:"column:project_id;type:uuid;index"`
	WorkspaceID  uuid.UUID      `json:"workspaceId"  gorm:"column:workspace_id;type:uuid"`
	Name         string         `json:"name"         gorm:"column:name"`
	URL          string         `json:"url"          gorm:"column:url"`
	Owner        string         `json:"owner"        gorm:"column:owner"`
	RepositoryID int64          `json:"repositoryId" gorm:"column:repository_id"`
	Config       datatypes.JSON `json:"config"       gorm:"column:config"`
	CreatedByID  *uuid.UUID     `json:"createdById"  gorm:"column:created_by_id;type:uuid"`
	CreatedAt    time.Time      `json:"createdAt"    gorm:"column:created_at"`
}

func (GithubRepository) TableName() string {
	return "github_repositories"
}

type GithubRepositorySync struct {
	ID                     uuid.UUID      `json:"id"                     gorm:"column:id;type:uuid;primaryKey"`
	ProjectID              uuid.UUID      `json:"projectId"              gorm:"column:project_id;type:uuid;index"`
	WorkspaceID            uuid.UUID      `json:"workspaceId"            gorm:"column:workspace_id;type:uuid"`
	RepositoryID           uuid.UUID      `json:"repositoryId"           gorm:"column:repository_id;type:uuid"`
	WorkspaceIntegrationID uuid.UUID      `json:"workspaceIntegrationId" gorm:"column:workspace_integration_id;type:uuid"`
	ActorID                uuid.UUID      `json:"actorId"                gorm:"column:actor_id;type:uuid"`
	LabelID                *uuid.UUID     `json:"labelId"                gorm:"column:label_id;type:uuid"`
	Credentials            datatypes.JSON `json:"-"                      gorm:"column:credentials"`
	CreatedByID            *uuid.UUID     `json:"createdById"            gorm:"column:created_by_id;type:uuid"`
	CreatedAt              time.Time      `json:"createdAt"              gorm:"column:created_at"`
}

func (GithubRepositorySync) TableName() string {
	return "github_repository_syncs"
}
