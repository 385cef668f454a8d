package integrations_models

import (
	"time"

	integrations_enums "importhub/internal/features/integrations/enums"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Integration struct {
	ID        uuid.UUID                              `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	Provider  integrations_enums.IntegrationProvider `json:"provider"  gorm:"column:provider;uniqueIndex;not null"`
	Title     string                                 `json:"title"     gorm:"column:title"`
	CreatedAt time.Time                              `json:"createdAt" gorm:"column:created_at"`
}

func (Integration) TableName() string {
	return "integrations"
}

// WorkspaceIntegration is an integration installed into a workspace. ActorID
// is the bot account acting on behalf of the integration.
type WorkspaceIntegration struct {
	ID            uuid.UUID      `json:"id"            gorm:"column:id;type:uuid;primaryKey"`
	WorkspaceID   uuid.UUID      `json:"workspaceId"   gorm:"column:workspace_id;type:uuid;uniqueIndex:idx_workspace_integrations_integration"`
	IntegrationID uuid.UUID      `json:"integrationId" gorm:"column:integration_id;type:uuid;uniqueIndex:idx_workspace_integrations_integration"`
	ActorID       uuid.UUID      `json:"actorId"       gorm:"column:actor_id;type:uuid"`
	Config        datatypes.JSON `json:"config"        gorm:"column:config"`
	CreatedByID   *uuid.UUID     `json:"createdById"   gorm:"column:created_by_id;type:uuid"`
	CreatedAt     time.Time      `json:"createdAt"     gorm:"column:created_at"`
}

func (WorkspaceIntegration) TableName() string {
	return "workspace_integrations"
}
