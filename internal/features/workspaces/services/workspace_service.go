package workspaces_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	audit_logs "importhub/internal/features/audit_logs"
	users_enums "importhub/internal/features/users/enums"
	users_models "importhub/internal/features/users/models"
	workspaces_dto "importhub/internal/features/workspaces/dto"
	workspaces_models "importhub/internal/features/workspaces/models"
	workspaces_repositories "importhub/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

const membersBatchSize = 100

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrWorkspaceSlugTaken   = errors.New("workspace with this slug already exists")
	ErrInsufficientAccess   = errors.New("insufficient permissions to access workspace")
	ErrInsufficientToManage = errors.New("insufficient permissions to manage workspace")
)

type WorkspaceService struct {
	workspaceRepository  *workspaces_repositories.WorkspaceRepository
	membershipRepository *workspaces_repositories.MembershipRepository
	auditLogService      *audit_logs.AuditLogService
}

func (s *WorkspaceService) CreateWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	slug := strings.ToLower(strings.TrimSpace(request.Slug))

	existing, err := s.workspaceRepository.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check workspace slug: %w", err)
	}

	if existing != nil {
		return nil, ErrWorkspaceSlugTaken
	}

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(request.Name),
		Slug:      slug,
		OwnerID:   creator.ID,
		CreatedAt: time.Now().UTC(),
	}

	owner := &workspaces_models.WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspace.ID,
		MemberID:    creator.ID,
		Role:        users_enums.MemberRoleAdmin,
		CreatedByID: &creator.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.workspaceRepository.CreateWithOwner(workspace, owner); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s", workspace.Name),
		&creator.ID,
		&workspace.ID,
		nil,
	)

	ownerRole := users_enums.MemberRoleAdmin
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		Slug:      workspace.Slug,
		CreatedAt: workspace.CreatedAt,
		UserRole:  &ownerRole,
	}, nil
}

func (s *WorkspaceService) GetUserWorkspaces(user *users_models.User) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.workspaceRepository.GetUserWorkspaces(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: workspaces,
	}, nil
}

func (s *WorkspaceService) GetWorkspaceByID(workspaceID uuid.UUID) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

func (s *WorkspaceService) GetUserWorkspaceRole(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (*users_enums.MemberRole, error) {
	return s.membershipRepository.GetUserWorkspaceRole(workspaceID, userID)
}

// CanUserAccessWorkspace treats instance administrators as workspace admins.
func (s *WorkspaceService) CanUserAccessWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.MemberRole, error) {
	if user.CanManageInstance() {
		adminRole := users_enums.MemberRoleAdmin
		return true, &adminRole, nil
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, user.ID)
	if err != nil {
		return false, nil, err
	}

	return role != nil, role, nil
}

func (s *WorkspaceService) CanUserManageWorkspace(workspaceID uuid.UUID, user *users_models.User) (bool, error) {
	_, role, err := s.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return false, err
	}

	if role == nil {
		return false, nil
	}

	return role.AtLeast(users_enums.MemberRoleAdmin), nil
}

// AddMembers grants workspace membership, keeping any existing membership
// (and its role) untouched.
func (s *WorkspaceService) AddMembers(members []*workspaces_models.WorkspaceMember) error {
	if err := s.membershipRepository.AddMembersIgnoringConflicts(members, membersBatchSize); err != nil {
		return fmt.Errorf("failed to add workspace members: %w", err)
	}

	return nil
}

func (s *WorkspaceService) GetWorkspaceMembers(workspaceID uuid.UUID) ([]*workspaces_models.WorkspaceMember, error) {
	return s.membershipRepository.GetWorkspaceMembers(workspaceID)
}

func (s *WorkspaceService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	canManage, err := s.CanUserManageWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}

	if !canManage {
		return nil, ErrInsufficientToManage
	}

	return s.auditLogService.GetWorkspaceAuditLogs(workspaceID, request)
}
