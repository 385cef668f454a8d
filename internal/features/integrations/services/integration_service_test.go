package integrations_services

import (
	"os"
	"testing"

	integrations_dto "importhub/internal/features/integrations/dto"
	integrations_enums "importhub/internal/features/integrations/enums"
	projects_services "importhub/internal/features/projects/services"
	projects_testing "importhub/internal/features/projects/testing"
	users_enums "importhub/internal/features/users/enums"
	users_services "importhub/internal/features/users/services"
	users_testing "importhub/internal/features/users/testing"
	workspaces_services "importhub/internal/features/workspaces/services"
	workspaces_testing "importhub/internal/features/workspaces/testing"
	test_utils "importhub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	os.Exit(m.Run())
}

func Test_InstallIntegration_WithWorkspaceAdmin_CreatesBotMember(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Install", owner)
	user, err := users_testing.GetUser(owner.UserID)
	require.NoError(t, err)

	installed, err := GetIntegrationService().InstallIntegration(
		workspace.ID,
		integrations_enums.IntegrationProviderGithub,
		&integrations_dto.InstallIntegrationRequestDTO{},
		user,
	)
	require.NoError(t, err)

	bot, err := users_services.GetUserService().GetUserByID(installed.ActorID)
	require.NoError(t, err)
	assert.True(t, bot.IsBot)
	assert.True(t, bot.IsPasswordAutoset)

	role, err := workspaces_services.GetWorkspaceService().GetUserWorkspaceRole(workspace.ID, bot.ID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, users_enums.MemberRoleAdmin, *role)

	found, err := GetIntegrationService().GetWorkspaceIntegrationByProvider(
		workspace.ID,
		integrations_enums.IntegrationProviderGithub,
	)
	require.NoError(t, err)
	assert.Equal(t, installed.ID, found.ID)

	_, err = GetIntegrationService().InstallIntegration(
		workspace.ID,
		integrations_enums.IntegrationProviderGithub,
		&integrations_dto.InstallIntegrationRequestDTO{},
		user,
	)
	assert.ErrorIs(t, err, ErrIntegrationAlreadyInstalled)
}

func Test_InstallIntegration_WithWorkspaceViewer_ReturnsForbiddenError(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	viewerDTO := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Install viewer", owner)
	workspaces_testing.AddTestWorkspaceMember(workspace.ID, viewerDTO.UserID, users_enums.MemberRoleViewer)

	viewer, err := users_testing.GetUser(viewerDTO.UserID)
	require.NoError(t, err)

	_, err = GetIntegrationService().InstallIntegration(
		workspace.ID,
		integrations_enums.IntegrationProviderGithub,
		&integrations_dto.InstallIntegrationRequestDTO{},
		viewer,
	)
	assert.ErrorIs(t, err, ErrInsufficientToInstall)
}

func Test_GetWorkspaceIntegrationByProvider_WhenNotInstalled_ReturnsNotFound(t *testing.T) {
	_, err := GetIntegrationService().GetWorkspaceIntegrationByProvider(
		uuid.New(),
		integrations_enums.IntegrationProviderGithub,
	)

	assert.ErrorIs(t, err, ErrIntegrationNotFound)
}

func Test_ReplaceGithubSync_RunTwice_LeavesSingleRepositoryAndSync(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Sync", owner)
	project := projects_testing.CreateTestProject("Sync", workspace.ID, owner.UserID)
	user, err := users_testing.GetUser(owner.UserID)
	require.NoError(t, err)

	installed, err := GetIntegrationService().InstallIntegration(
		workspace.ID,
		integrations_enums.IntegrationProviderGithub,
		&integrations_dto.InstallIntegrationRequestDTO{},
		user,
	)
	require.NoError(t, err)

	for _, name := range []string{"first-repo", "second-repo"} {
		_, err := GetIntegrationService().ReplaceGithubSync(&GithubSyncRequest{
			WorkspaceID:          workspace.ID,
			ProjectID:            project.ID,
			WorkspaceIntegration: installed,
			Repository: integrations_dto.GithubRepositoryDTO{
				Name:         name,
				URL:          "https://github.com/acme/" + name,
				Owner:        "acme",
				RepositoryID: 42,
			},
			Credentials: datatypes.JSON(`{"token":"secret"}`),
			CreatedByID: &owner.UserID,
		})
		require.NoError(t, err)
	}

	repositories, err := GetIntegrationService().GetProjectGithubRepositories(project.ID)
	require.NoError(t, err)
	require.Len(t, repositories, 1)
	assert.Equal(t, "second-repo", repositories[0].Name)

	syncs, err := GetIntegrationService().GetProjectGithubSyncs(project.ID)
	require.NoError(t, err)
	require.Len(t, syncs, 1)
	assert.Equal(t, repositories[0].ID, syncs[0].RepositoryID)
	assert.Equal(t, installed.ActorID, syncs[0].ActorID)
	assert.JSONEq(t, `{"token":"secret"}`, string(syncs[0].Credentials))

	labels, err := projects_services.GetProjectService().GetProjectLabels(project.ID)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "GitHub", labels[0].Name)
	require.NotNil(t, syncs[0].LabelID)
	assert.Equal(t, labels[0].ID, *syncs[0].LabelID)

	botRole, err := projects_services.GetMembershipService().GetUserProjectRole(project.ID, installed.ActorID)
	require.NoError(t, err)
	require.NotNil(t, botRole)
	assert.Equal(t, users_enums.MemberRoleAdmin, *botRole)
}
