package projects_testing

import (
	"time"

	projects_models "importhub/internal/features/projects/models"
	projects_repositories "importhub/internal/features/projects/repositories"
	users_enums "importhub/internal/features/users/enums"

	"github.com/google/uuid"
)

// CreateTestProject stores a project in the workspace with ownerID as its
// admin member.
func CreateTestProject(name string, workspaceID uuid.UUID, ownerID uuid.UUID) *projects_models.Project {
	project := &projects_models.Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Identifier:  "TST",
		CreatedAt:   time.Now().UTC(),
	}

	owner := &projects_models.ProjectMember{
		MemberID:    ownerID,
		WorkspaceID: workspaceID,
		Role:        users_enums.MemberRoleAdmin,
	}

	repository := &projects_repositories.ProjectRepository{}
	if err := repository.CreateProjectWithOwner(project, owner); err != nil {
		panic(err)
	}

	return project
}
