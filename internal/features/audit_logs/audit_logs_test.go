package audit_logs_test

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	audit_logs "importhub/internal/features/audit_logs"
	users_enums "importhub/internal/features/users/enums"
	users_testing "importhub/internal/features/users/testing"
	workspaces_testing "importhub/internal/features/workspaces/testing"
	test_utils "importhub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	os.Exit(m.Run())
}

func Test_GetGlobalAuditLogs_WithDifferentUserRoles_EnforcesPermissions(t *testing.T) {
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	router := workspaces_testing.CreateTestRouter(audit_logs.GetAuditLogController())
	service := audit_logs.GetAuditLogService()
	workspaceID := uuid.New()
	testID := uuid.New().String()

	userMessage := fmt.Sprintf("Test log with user %s", testID)
	workspaceMessage := fmt.Sprintf("Test log with workspace %s", testID)
	standaloneMessage := fmt.Sprintf("Test log standalone %s", testID)

	service.WriteAuditLog(userMessage, &admin.UserID, nil, nil)
	service.WriteAuditLog(workspaceMessage, nil, &workspaceID, nil)
	service.WriteAuditLog(standaloneMessage, nil, nil, nil)

	var response audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/audit-logs/global?limit=1000",
		"Bearer "+admin.Token,
		http.StatusOK,
		&response,
	)

	messages := extractMessages(response.AuditLogs)
	assert.Contains(t, messages, userMessage)
	assert.Contains(t, messages, workspaceMessage)
	assert.Contains(t, messages, standaloneMessage)
	assert.GreaterOrEqual(t, response.Total, int64(3))

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/audit-logs/global", "Bearer "+member.Token, http.StatusForbidden)
	assert.Contains(t, string(resp.Body), "only administrators can view global audit logs")
}

func Test_GetUserAuditLogs_WithDifferentUsers_EnforcesPermissions(t *testing.T) {
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	first := users_testing.CreateTestUser(users_enums.UserRoleMember)
	second := users_testing.CreateTestUser(users_enums.UserRoleMember)
	router := workspaces_testing.CreateTestRouter(audit_logs.GetAuditLogController())
	service := audit_logs.GetAuditLogService()
	testID := uuid.New().String()

	firstMessage := fmt.Sprintf("Test log first user %s", testID)
	secondMessage := fmt.Sprintf("Test log second user %s", testID)

	service.WriteAuditLog(firstMessage, &first.UserID, nil, nil)
	service.WriteAuditLog(secondMessage, &second.UserID, nil, nil)

	var adminView audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/audit-logs/users/%s", first.UserID),
		"Bearer "+admin.Token,
		http.StatusOK,
		&adminView,
	)
	assert.Equal(t, []string{firstMessage}, extractMessages(adminView.AuditLogs))
	require.NotNil(t, adminView.AuditLogs[0].UserEmail)
	assert.Equal(t, first.Email, *adminView.AuditLogs[0].UserEmail)

	var ownView audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/audit-logs/users/%s", second.UserID),
		"Bearer "+second.Token,
		http.StatusOK,
		&ownView,
	)
	assert.Equal(t, []string{secondMessage}, extractMessages(ownView.AuditLogs))

	resp := test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/audit-logs/users/%s", first.UserID),
		"Bearer "+second.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions")

	test_utils.MakeGetRequest(t, router, "/api/v1/audit-logs/users/not-a-uuid", "Bearer "+admin.Token, http.StatusBadRequest)
}

func Test_GetWorkspaceAuditLogs_WithPaginationAndBeforeDate_ReturnsMatchingLogs(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Audit", owner)
	service := audit_logs.GetAuditLogService()
	repository := &audit_logs.AuditLogRepository{}

	oldLog := &audit_logs.AuditLog{
		UserID:      &owner.UserID,
		WorkspaceID: &workspace.ID,
		Message:     "Old workspace log",
		CreatedAt:   time.Now().UTC().Add(-2 * time.Hour),
	}
	require.NoError(t, repository.Create(oldLog))

	service.WriteAuditLog("Recent workspace log", &owner.UserID, &workspace.ID, nil)
	service.WriteAuditLog("Other workspace log", &owner.UserID, nil, nil)

	response, err := service.GetWorkspaceAuditLogs(workspace.ID, &audit_logs.GetAuditLogsRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), response.Total)
	assert.Equal(t, []string{"Recent workspace log", "Old workspace log"}, extractMessages(response.AuditLogs))
	require.NotNil(t, response.AuditLogs[0].WorkspaceName)
	assert.Equal(t, "Audit", *response.AuditLogs[0].WorkspaceName)

	page, err := service.GetWorkspaceAuditLogs(workspace.ID, &audit_logs.GetAuditLogsRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Old workspace log"}, extractMessages(page.AuditLogs))
	assert.Equal(t, 1, page.Limit)

	beforeDate := time.Now().UTC().Add(-1 * time.Hour)
	filtered, err := service.GetWorkspaceAuditLogs(
		workspace.ID,
		&audit_logs.GetAuditLogsRequest{Limit: 10, BeforeDate: &beforeDate},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Total)
	assert.Equal(t, []string{"Old workspace log"}, extractMessages(filtered.AuditLogs))
}

func Test_GetWorkspaceAuditLogs_WithInvalidLimit_UsesDefaultPage(t *testing.T) {
	response, err := audit_logs.GetAuditLogService().GetWorkspaceAuditLogs(
		uuid.New(),
		&audit_logs.GetAuditLogsRequest{Limit: 5000, Offset: -3},
	)
	require.NoError(t, err)

	assert.Equal(t, 100, response.Limit)
	assert.Equal(t, 0, response.Offset)
	assert.Empty(t, response.AuditLogs)
}

func extractMessages(logs []*audit_logs.AuditLogDTO) []string {
	messages := make([]string, 0, len(logs))
	for _, log := range logs {
		messages = append(messages, log.Message)
	}

	return messages
}
