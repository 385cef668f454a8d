package integrations_controllers

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	integrations_dto "importhub/internal/features/integrations/dto"
	integrations_enums "importhub/internal/features/integrations/enums"
	integrations_models "importhub/internal/features/integrations/models"
	users_enums "importhub/internal/features/users/enums"
	users_testing "importhub/internal/features/users/testing"
	workspaces_testing "importhub/internal/features/workspaces/testing"
	test_utils "importhub/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	os.Exit(m.Run())
}

func Test_InstallIntegration_ThenList_ReturnsInstalledProvider(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Integrations", owner)
	router := workspaces_testing.CreateTestRouter(GetIntegrationController())

	var installed integrations_models.WorkspaceIntegration
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/integrations/github", workspace.ID),
		"Bearer "+owner.Token,
		map[string]any{"config": map[string]any{"installation_id": 7}},
		http.StatusOK,
		&installed,
	)
	assert.Equal(t, workspace.ID, installed.WorkspaceID)

	var response integrations_dto.ListWorkspaceIntegrationsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/integrations", workspace.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Integrations, 1)
	assert.Equal(t, integrations_enums.IntegrationProviderGithub, response.Integrations[0].Provider)
	assert.Equal(t, installed.ActorID, response.Integrations[0].ActorID)
}

func Test_InstallIntegration_WithUnknownProvider_ReturnsBadRequest(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Unknown provider", owner)
	router := workspaces_testing.CreateTestRouter(GetIntegrationController())

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/integrations/gitlab", workspace.ID),
		"Bearer "+owner.Token,
		nil,
		http.StatusBadRequest,
	)
}

func Test_GetWorkspaceIntegrations_WithOutsider_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Private integrations", owner)
	router := workspaces_testing.CreateTestRouter(GetIntegrationController())

	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/integrations", workspace.ID),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}
