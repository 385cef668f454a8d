package integrations_testing

import (
	integrations_dto "importhub/internal/features/integrations/dto"
	integrations_enums "importhub/internal/features/integrations/enums"
	integrations_models "importhub/internal/features/integrations/models"
	integrations_services "importhub/internal/features/integrations/services"
	users_dto "importhub/internal/features/users/dto"
	users_services "importhub/internal/features/users/services"

	"github.com/google/uuid"
)

// InstallTestIntegration installs the provider into the workspace on behalf
// of installer, who must be able to manage the workspace.
func InstallTestIntegration(
	workspaceID uuid.UUID,
	provider integrations_enums.IntegrationProvider,
	installer *users_dto.SignInResponseDTO,
) *integrations_models.WorkspaceIntegration {
	user, err := users_services.GetUserService().GetUserByID(installer.UserID)
	if err != nil {
		panic(err)
	}

	workspaceIntegration, err := integrations_services.GetIntegrationService().InstallIntegration(
		workspaceID,
		provider,
		&integrations_dto.InstallIntegrationRequestDTO{},
		user,
	)
	if err != nil {
		panic(err)
	}

	return workspaceIntegration
}
