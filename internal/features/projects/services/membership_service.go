package projects_services

import (
	"errors"
	"fmt"

	projects_dto "importhub/internal/features/projects/dto"
	projects_models "importhub/internal/features/projects/models"
	projects_repositories "importhub/internal/features/projects/repositories"
	users_enums "importhub/internal/features/users/enums"
	users_models "importhub/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const membersBatchSize = 100

var ErrInsufficientToViewMembers = errors.New("insufficient permissions to view project members")

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectService       *ProjectService
}

func (s *MembershipService) GetMembers(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	project, err := s.projectService.GetWorkspaceProject(workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	canAccess, err := s.projectService.CanUserAccessProject(project, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, ErrInsufficientToViewMembers
	}

	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	membersList := make([]projects_dto.ProjectMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

// AddMembers grants project membership in batches, keeping existing
// memberships untouched.
func (s *MembershipService) AddMembers(members []*projects_models.ProjectMember) error {
	if err := s.membershipRepository.AddMembersIgnoringConflicts(members, membersBatchSize); err != nil {
		return fmt.Errorf("failed to add project members: %w", err)
	}

	return nil
}

func (s *MembershipService) UpsertMemberRole(tx *gorm.DB, member *projects_models.ProjectMember) error {
	if !member.Role.IsValid() {
		return fmt.Errorf("invalid member role %d", member.Role)
	}

	if err := s.membershipRepository.UpsertMemberRole(tx, member); err != nil {
		return fmt.Errorf("failed to upsert project member: %w", err)
	}

	return nil
}

func (s *MembershipService) GetUserProjectRole(projectID, userID uuid.UUID) (*users_enums.MemberRole, error) {
	return s.membershipRepository.GetUserProjectRole(projectID, userID)
}
