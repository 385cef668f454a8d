package projects_services

import (
	"os"
	"testing"

	projects_models "importhub/internal/features/projects/models"
	projects_testing "importhub/internal/features/projects/testing"
	users_enums "importhub/internal/features/users/enums"
	users_testing "importhub/internal/features/users/testing"
	workspaces_testing "importhub/internal/features/workspaces/testing"
	"importhub/internal/storage"
	test_utils "importhub/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	os.Exit(m.Run())
}

func Test_AddMembers_WithExistingMember_KeepsExistingRole(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Add members", owner)
	project := projects_testing.CreateTestProject("Add members", workspace.ID, owner.UserID)
	newcomer := users_testing.CreateTestUser(users_enums.UserRoleMember)
	service := GetMembershipService()

	members := []*projects_models.ProjectMember{
		{ProjectID: project.ID, MemberID: owner.UserID, WorkspaceID: workspace.ID, Role: users_enums.MemberRoleViewer},
		{ProjectID: project.ID, MemberID: newcomer.UserID, WorkspaceID: workspace.ID, Role: users_enums.MemberRoleViewer},
	}

	require.NoError(t, service.AddMembers(members))

	ownerRole, err := service.GetUserProjectRole(project.ID, owner.UserID)
	require.NoError(t, err)
	require.NotNil(t, ownerRole)
	assert.Equal(t, users_enums.MemberRoleAdmin, *ownerRole)

	newcomerRole, err := service.GetUserProjectRole(project.ID, newcomer.UserID)
	require.NoError(t, err)
	require.NotNil(t, newcomerRole)
	assert.Equal(t, users_enums.MemberRoleViewer, *newcomerRole)
}

func Test_UpsertMemberRole_WithExistingMember_OverwritesRole(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Upsert members", owner)
	project := projects_testing.CreateTestProject("Upsert members", workspace.ID, owner.UserID)
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	service := GetMembershipService()

	require.NoError(t, service.AddMembers([]*projects_models.ProjectMember{
		{ProjectID: project.ID, MemberID: member.UserID, WorkspaceID: workspace.ID, Role: users_enums.MemberRoleViewer},
	}))

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		return service.UpsertMemberRole(tx, &projects_models.ProjectMember{
			ProjectID:   project.ID,
			MemberID:    member.UserID,
			WorkspaceID: workspace.ID,
			Role:        users_enums.MemberRoleAdmin,
		})
	})
	require.NoError(t, err)

	role, err := service.GetUserProjectRole(project.ID, member.UserID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, users_enums.MemberRoleAdmin, *role)
}

func Test_UpsertMemberRole_WithInvalidRole_ReturnsError(t *testing.T) {
	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		return GetMembershipService().UpsertMemberRole(tx, &projects_models.ProjectMember{Role: 3})
	})

	assert.Error(t, err)
}

func Test_EnsureLabel_CalledTwice_KeepsSingleLabel(t *testing.T) {
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	workspace := workspaces_testing.CreateTestWorkspace("Labels", owner)
	project := projects_testing.CreateTestProject("Labels", workspace.ID, owner.UserID)
	service := GetProjectService()

	var first, second *projects_models.Label
	for i, target := range []**projects_models.Label{&first, &second} {
		err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
			label, err := service.EnsureLabel(tx, &projects_models.Label{
				ProjectID:   project.ID,
				WorkspaceID: workspace.ID,
				Name:        "GitHub",
				Description: "Label to sync issues with GitHub issues",
				Color:       []string{"#003773", "#ffffff"}[i],
			})
			*target = label
			return err
		})
		require.NoError(t, err)
	}

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "#003773", second.Color)

	labels, err := service.GetProjectLabels(project.ID)
	require.NoError(t, err)
	assert.Len(t, labels, 1)
}
