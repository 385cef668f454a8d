package integrations_dto

import (
	"time"

	integrations_enums "importhub/internal/features/integrations/enums"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InstallIntegrationRequestDTO struct {
	Config datatypes.JSON `json:"config"`
}

type WorkspaceIntegrationResponseDTO struct {
	ID          uuid.UUID                              `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID                              `json:"workspaceId" gorm:"column:workspace_id"`
	Provider    integrations_enums.IntegrationProvider `json:"provider"    gorm:"column:provider"`
	Title       string                                 `json:"title"       gorm:"column:title"`
	ActorID     uuid.UUID                              `json:"actorId"     gorm:"column:actor_id"`
	CreatedAt   time.Time                              `json:"createdAt"   gorm:"column:created_at"`
}

type ListWorkspaceIntegrationsResponseDTO struct {
	Integrations []WorkspaceIntegrationResponseDTO `json:"integrations"`
}

// GithubRepositoryDTO describes the repository a project is synced with.
type GithubRepositoryDTO struct {
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	Owner        string         `json:"owner"`
	RepositoryID int64          `json:"repository_id"`
	Config       datatypes.JSON `json:"config"`
}
