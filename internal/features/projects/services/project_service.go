package projects_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	audit_logs "importhub/internal/features/audit_logs"
	projects_dto "importhub/internal/features/projects/dto"
	projects_models "importhub/internal/features/projects/models"
	projects_repositories "importhub/internal/features/projects/repositories"
	users_enums "importhub/internal/features/users/enums"
	users_models "importhub/internal/features/users/models"
	workspaces_services "importhub/internal/features/workspaces/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound           = errors.New("project not found")
	ErrInsufficientToCreate      = errors.New("insufficient permissions to create projects")
	ErrInsufficientToViewProject = errors.New("insufficient permissions to view project")
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository
	labelRepository      *projects_repositories.LabelRepository
	workspaceService     *workspaces_services.WorkspaceService
	auditLogService      *audit_logs.AuditLogService
}

func (s *ProjectService) CreateProject(
	workspaceID uuid.UUID,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return nil, err
	}

	_, role, err := s.workspaceService.CanUserAccessWorkspace(workspaceID, creator)
	if err != nil {
		return nil, err
	}

	if role == nil || !role.AtLeast(users_enums.MemberRoleMember) {
		return nil, ErrInsufficientToCreate
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(request.Name),
		Identifier:  strings.ToUpper(strings.TrimSpace(request.Identifier)),
		CreatedAt:   time.Now().UTC(),
	}

	owner := &projects_models.ProjectMember{
		ID:          uuid.New(),
		MemberID:    creator.ID,
		WorkspaceID: workspaceID,
		Role:        users_enums.MemberRoleAdmin,
		CreatedByID: &creator.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProjectWithOwner(project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&workspaceID,
		&project.ID,
	)

	ownerRole := users_enums.MemberRoleAdmin
	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		WorkspaceID: project.WorkspaceID,
		Name:        project.Name,
		Identifier:  project.Identifier,
		CreatedAt:   project.CreatedAt,
		UserRole:    &ownerRole,
	}, nil
}

func (s *ProjectService) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

// GetWorkspaceProject returns the project only when it belongs to the
// workspace.
func (s *ProjectService) GetWorkspaceProject(workspaceID, projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if project.WorkspaceID != workspaceID {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func (s *ProjectService) GetWorkspaceProjects(workspaceID uuid.UUID) ([]*projects_models.Project, error) {
	return s.projectRepository.GetWorkspaceProjects(workspaceID)
}

// CanUserAccessProject grants access to project members and to workspace
// admins.
func (s *ProjectService) CanUserAccessProject(
	project *projects_models.Project,
	user *users_models.User,
) (bool, error) {
	canManageWorkspace, err := s.workspaceService.CanUserManageWorkspace(project.WorkspaceID, user)
	if err != nil {
		return false, err
	}

	if canManageWorkspace {
		return true, nil
	}

	role, err := s.membershipRepository.GetUserProjectRole(project.ID, user.ID)
	if err != nil {
		return false, err
	}

	return role != nil, nil
}

// EnsureLabel creates the label inside tx unless the project already has a
// label with that name.
func (s *ProjectService) EnsureLabel(tx *gorm.DB, label *projects_models.Label) (*projects_models.Label, error) {
	stored, err := s.labelRepository.EnsureLabel(tx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure label %q: %w", label.Name, err)
	}

	return stored, nil
}

func (s *ProjectService) GetProjectLabels(projectID uuid.UUID) ([]*projects_models.Label, error) {
	return s.labelRepository.GetProjectLabels(projectID)
}
