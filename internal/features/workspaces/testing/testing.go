package workspaces_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "importhub/internal/features/users/dto"
	users_enums "importhub/internal/features/users/enums"
	users_middleware "importhub/internal/features/users/middleware"
	users_services "importhub/internal/features/users/services"
	workspaces_models "importhub/internal/features/workspaces/models"
	workspaces_repositories "importhub/internal/features/workspaces/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts the controllers behind the auth middleware under
// /api/v1, the same way the web server does.
func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	return router
}

// CreateTestWorkspace stores a workspace with the owner as admin member
// without going through the API.
func CreateTestWorkspace(name string, owner *users_dto.SignInResponseDTO) *workspaces_models.Workspace {
	id := uuid.New()
	workspace := &workspaces_models.Workspace{
		ID:        id,
		Name:      name,
		Slug:      fmt.Sprintf("%s-%s", strings.ToLower(strings.ReplaceAll(name, " ", "-")), id.String()[:8]),
		OwnerID:   owner.UserID,
		CreatedAt: time.Now().UTC(),
	}

	member := &workspaces_models.WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspace.ID,
		MemberID:    owner.UserID,
		Role:        users_enums.MemberRoleAdmin,
		CreatedAt:   time.Now().UTC(),
	}

	repository := &workspaces_repositories.WorkspaceRepository{}
	if err := repository.CreateWithOwner(workspace, member); err != nil {
		panic(err)
	}

	return workspace
}

func AddTestWorkspaceMember(workspaceID uuid.UUID, userID uuid.UUID, role users_enums.MemberRole) {
	repository := &workspaces_repositories.MembershipRepository{}
	member := &workspaces_models.WorkspaceMember{
		WorkspaceID: workspaceID,
		MemberID:    userID,
		Role:        role,
	}

	if err := repository.AddMembersIgnoringConflicts([]*workspaces_models.WorkspaceMember{member}, 1); err != nil {
		panic(err)
	}
}
