package integrations_repositories

import (
	"errors"
	"time"

	integrations_dto "importhub/internal/features/integrations/dto"
	integrations_enums "importhub/internal/features/integrations/enums"
	integrations_models "importhub/internal/features/integrations/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IntegrationRepository struct{}

// EnsureIntegration returns the catalog row of the provider, creating it on
// first use.
func (r *IntegrationRepository) EnsureIntegration(
	provider integrations_enums.IntegrationProvider,
) (*integrations_models.Integration, error) {
	integration := &integrations_models.Integration{
		ID:        uuid.New(),
		Provider:  provider,
		Title:     provider.Title(),
		CreatedAt: time.Now().UTC(),
	}

	err := storage.GetDb().
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "provider"}}, DoNothing: true}).
		Create(integration).Error
	if err != nil {
		return nil, err
	}

	var stored integrations_models.Integration
	if err := storage.GetDb().Where("provider = ?", provider).First(&stored).Error; err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *IntegrationRepository) CreateWorkspaceIntegration(
	workspaceIntegration *integrations_models.WorkspaceIntegration,
) error {
	if workspaceIntegration.ID == uuid.Nil {
		workspaceIntegration.ID = uuid.New()
	}
	if workspaceIntegration.CreatedAt.IsZero() {
		workspaceIntegration.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(workspaceIntegration).Error
}

func (r *IntegrationRepository) GetWorkspaceIntegrationByProvider(
	workspaceID uuid.UUID,
	provider integrations_enums.IntegrationProvider,
) (*integrations_models.WorkspaceIntegration, error) {
	var workspaceIntegration integrations_models.WorkspaceIntegration

	err := storage.GetDb().
		Table("workspace_integrations wi").
		Select("wi.*").
		Joins("JOIN integrations i ON wi.integration_id = i.id").
		Where("wi.workspace_id = ? AND i.provider = ?", workspaceID, provider).
		Take(&workspaceIntegration).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspaceIntegration, nil
}

func (r *IntegrationRepository) GetWorkspaceIntegrations(
	workspaceID uuid.UUID,
) ([]integrations_dto.WorkspaceIntegrationResponseDTO, error) {
	results := make([]integrations_dto.WorkspaceIntegrationResponseDTO, 0)

	err := storage.GetDb().
		Table("workspace_integrations wi").
		Select("wi.id, wi.workspace_id, i.provider, i.title, wi.actor_id, wi.created_at").
		Joins("JOIN integrations i ON wi.integration_id = i.id").
		Where("wi.workspace_id = ?", workspaceID).
		Order("i.provider ASC").
		Scan(&results).Error

	return results, err
}
