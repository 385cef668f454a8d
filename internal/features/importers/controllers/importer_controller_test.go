package importers_controllers

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	importers_dto "importhub/internal/features/importers/dto"
	importers_enums "importhub/internal/features/importers/enums"
	importers_models "importhub/internal/features/importers/models"
	importers_services "importhub/internal/features/importers/services"
	importers_testing "importhub/internal/features/importers/testing"
	projects_testing "importhub/internal/features/projects/testing"
	"importhub/internal/features/tasks"
	tasks_testing "importhub/internal/features/tasks/testing"
	users_enums "importhub/internal/features/users/enums"
	users_testing "importhub/internal/features/users/testing"
	workspaces_testing "importhub/internal/features/workspaces/testing"
	"importhub/internal/util/logger"
	test_utils "importhub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQueue = tasks_testing.NewMemoryQueue()

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	importers_services.GetImporterService().SetTaskDispatcher(tasks.NewTaskDispatcher(testQueue, logger.GetLogger()))
	importers_services.GetImporterService().SetRateLimiter(&importers_testing.FixedRateLimiter{Allowed: true})
	os.Exit(m.Run())
}

func Test_CreateImporter_ThenGetAndList_ReturnsPendingJob(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Importers", owner)
	project := projects_testing.CreateTestProject("Importers", workspace.ID, owner.UserID)
	router := workspaces_testing.CreateTestRouter(GetImporterController())

	var created importers_models.ImportJob
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects/%s/importers/github", workspace.ID, project.ID),
		"Bearer "+owner.Token,
		map[string]any{
			"data":     map[string]any{"users": []map[string]any{{"email": "dev@acme.dev", "import": "invite"}}},
			"config":   map[string]any{"sync": true},
			"metadata": map[string]any{"name": "api", "owner": "acme", "repository_id": 1},
		},
		http.StatusOK,
		&created,
	)
	assert.Equal(t, importers_enums.ImporterStatusPending, created.Status)
	assert.Equal(t, importers_enums.ImportServiceGithub, created.Service)
	assert.Equal(t, project.ID, created.ProjectID)

	var found importers_models.ImportJob
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/importers/%s", workspace.ID, created.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
		&found,
	)
	assert.Equal(t, created.ID, found.ID)

	var list importers_dto.ListImportersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/importers", workspace.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
		&list,
	)
	require.Len(t, list.Importers, 1)
	assert.Equal(t, created.ID, list.Importers[0].ID)
}

func Test_CreateImporter_WithWorkspaceViewer_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	viewer := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Importers viewer", owner)
	project := projects_testing.CreateTestProject("Viewer", workspace.ID, owner.UserID)
	workspaces_testing.AddTestWorkspaceMember(workspace.ID, viewer.UserID, users_enums.MemberRoleViewer)
	router := workspaces_testing.CreateTestRouter(GetImporterController())

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects/%s/importers/jira", workspace.ID, project.ID),
		"Bearer "+viewer.Token,
		map[string]any{"data": map[string]any{"users": []any{}}},
		http.StatusForbidden,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/importers", workspace.ID),
		"Bearer "+viewer.Token,
		http.StatusOK,
	)
}

func Test_CreateImporter_WithUnknownServiceOrMissingData_ReturnsBadRequest(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Importers invalid", owner)
	project := projects_testing.CreateTestProject("Invalid", workspace.ID, owner.UserID)
	router := workspaces_testing.CreateTestRouter(GetImporterController())

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects/%s/importers/trello", workspace.ID, project.ID),
		"Bearer "+owner.Token,
		map[string]any{"data": map[string]any{"users": []any{}}},
		http.StatusBadRequest,
	)

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects/%s/importers/jira", workspace.ID, project.ID),
		"Bearer "+owner.Token,
		map[string]any{"config": map[string]any{}},
		http.StatusBadRequest,
	)
}

func Test_CreateImporter_WithUnknownProject_ReturnsNotFound(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Importers missing project", owner)
	router := workspaces_testing.CreateTestRouter(GetImporterController())

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/projects/%s/importers/jira", workspace.ID, uuid.New()),
		"Bearer "+owner.Token,
		map[string]any{"data": map[string]any{"users": []any{}}},
		http.StatusNotFound,
	)
}

func Test_GetWorkspaceImporters_WithOutsider_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Importers outsider", owner)
	router := workspaces_testing.CreateTestRouter(GetImporterController())

	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/importers", workspace.ID),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/importers/%s", workspace.ID, uuid.New()),
		"Bearer "+owner.Token,
		http.StatusNotFound,
	)
}
