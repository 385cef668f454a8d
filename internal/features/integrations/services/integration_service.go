package integrations_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "importhub/internal/features/audit_logs"
	integrations_dto "importhub/internal/features/integrations/dto"
	integrations_enums "importhub/internal/features/integrations/enums"
	integrations_models "importhub/internal/features/integrations/models"
	integrations_repositories "importhub/internal/features/integrations/repositories"
	projects_models "importhub/internal/features/projects/models"
	projects_services "importhub/internal/features/projects/services"
	users_enums "importhub/internal/features/users/enums"
	users_models "importhub/internal/features/users/models"
	users_services "importhub/internal/features/users/services"
	workspaces_models "importhub/internal/features/workspaces/models"
	workspaces_services "importhub/internal/features/workspaces/services"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	githubLabelName        = "GitHub"
	githubLabelDescription = "Label to sync issues with GitHub issues"
	githubLabelColor       = "#003773"
)

var (
	ErrUnknownProvider             = errors.New("unknown integration provider")
	ErrIntegrationNotFound         = errors.New("integration is not installed in workspace")
	ErrIntegrationAlreadyInstalled = errors.New("integration is already installed in workspace")
	ErrInsufficientToInstall       = errors.New("insufficient permissions to install integrations")
	ErrInsufficientToView          = errors.New("insufficient permissions to view integrations")
)

// GithubSyncRequest links a project with a GitHub repository through an
// installed workspace integration.
type GithubSyncRequest struct {
	WorkspaceID          uuid.UUID
	ProjectID            uuid.UUID
	WorkspaceIntegration *integrations_models.WorkspaceIntegration
	Repository           integrations_dto.GithubRepositoryDTO
	Credentials          datatypes.JSON
	CreatedByID          *uuid.UUID
}

type IntegrationService struct {
	integrationRepository *integrations_repositories.IntegrationRepository
	githubRepository      *integrations_repositories.GithubRepositoryRepository
	userService           *users_services.UserService
	workspaceService      *workspaces_services.WorkspaceService
	projectService        *projects_services.ProjectService
	membershipService     *projects_services.MembershipService
	auditLogService       *audit_logs.AuditLogService
}

// InstallIntegration installs the provider into the workspace. A bot account
// is created for the installation and added to the workspace as admin.
func (s *IntegrationService) InstallIntegration(
	workspaceID uuid.UUID,
	provider integrations_enums.IntegrationProvider,
	request *integrations_dto.InstallIntegrationRequestDTO,
	user *users_models.User,
) (*integrations_models.WorkspaceIntegration, error) {
	if !provider.IsValid() {
		return nil, ErrUnknownProvider
	}

	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return nil, err
	}

	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, ErrInsufficientToInstall
	}

	existing, err := s.integrationRepository.GetWorkspaceIntegrationByProvider(workspaceID, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to check installed integration: %w", err)
	}
	if existing != nil {
		return nil, ErrIntegrationAlreadyInstalled
	}

	integration, err := s.integrationRepository.EnsureIntegration(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}

	bot, err := s.userService.CreateBotUser(provider.Title())
	if err != nil {
		return nil, err
	}

	err = s.workspaceService.AddMembers([]*workspaces_models.WorkspaceMember{{
		WorkspaceID: workspaceID,
		MemberID:    bot.ID,
		Role:        users_enums.MemberRoleAdmin,
		CreatedByID: &user.ID,
	}})
	if err != nil {
		return nil, err
	}

	config := request.Config
	if len(config) == 0 {
		config = datatypes.JSON("{}")
	}

	workspaceIntegration := &integrations_models.WorkspaceIntegration{
		ID:            uuid.New(),
		WorkspaceID:   workspaceID,
		IntegrationID: integration.ID,
		ActorID:       bot.ID,
		Config:        config,
		CreatedByID:   &user.ID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.integrationRepository.CreateWorkspaceIntegration(workspaceIntegration); err != nil {
		return nil, fmt.Errorf("failed to install integration: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Integration installed: %s", integration.Title),
		&user.ID,
		&workspaceID,
		nil,
	)

	return workspaceIntegration, nil
}

func (s *IntegrationService) GetWorkspaceIntegrations(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*integrations_dto.ListWorkspaceIntegrationsResponseDTO, error) {
	canAccess, _, err := s.workspaceService.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, ErrInsufficientToView
	}

	integrations, err := s.integrationRepository.GetWorkspaceIntegrations(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace integrations: %w", err)
	}

	return &integrations_dto.ListWorkspaceIntegrationsResponseDTO{
		Integrations: integrations,
	}, nil
}

func (s *IntegrationService) GetWorkspaceIntegrationByProvider(
	workspaceID uuid.UUID,
	provider integrations_enums.IntegrationProvider,
) (*integrations_models.WorkspaceIntegration, error) {
	workspaceIntegration, err := s.integrationRepository.GetWorkspaceIntegrationByProvider(workspaceID, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace integration: %w", err)
	}

	if workspaceIntegration == nil {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, provider)
	}

	return workspaceIntegration, nil
}

// ReplaceGithubSync drops whatever repository sync the project had and links
// it with the requested repository. Everything happens in one transaction:
// the GitHub label is ensured, the repository and sync rows are recreated and
// the integration bot becomes a project admin.
func (s *IntegrationService) ReplaceGithubSync(request *GithubSyncRequest) (*integrations_models.GithubRepositorySync, error) {
	var sync *integrations_models.GithubRepositorySync

	err := s.githubRepository.Transaction(func(tx *gorm.DB) error {
		if err := s.githubRepository.DeleteProjectSync(tx, request.ProjectID); err != nil {
			return fmt.Errorf("failed to delete previous repository sync: %w", err)
		}

		label, err := s.projectService.EnsureLabel(tx, &projects_models.Label{
			ProjectID:   request.ProjectID,
			WorkspaceID: request.WorkspaceID,
			Name:        githubLabelName,
			Description: githubLabelDescription,
			Color:       githubLabelColor,
		})
		if err != nil {
			return err
		}

		repositoryConfig := request.Repository.Config
		if len(repositoryConfig) == 0 {
			repositoryConfig = datatypes.JSON("{}")
		}

		repository := &integrations_models.GithubRepository{
			ProjectID:    request.ProjectID,
			WorkspaceID:  request.WorkspaceID,
			Name:         request.Repository.Name,
			URL:          request.Repository.URL,
			Owner:        request.Repository.Owner,
			RepositoryID: request.Repository.RepositoryID,
			Config:       repositoryConfig,
			CreatedByID:  request.CreatedByID,
		}
		if err := s.githubRepository.CreateRepository(tx, repository); err != nil {
			return fmt.Errorf("failed to create repository: %w", err)
		}

		credentials := request.Credentials
		if len(credentials) == 0 {
			credentials = datatypes.JSON("{}")
		}

		sync = &integrations_models.GithubRepositorySync{
			ProjectID:              request.ProjectID,
			WorkspaceID:            request.WorkspaceID,
			RepositoryID:           repository.ID,
			WorkspaceIntegrationID: request.WorkspaceIntegration.ID,
			ActorID:                request.WorkspaceIntegration.ActorID,
			LabelID:                &label.ID,
			Credentials:            credentials,
			CreatedByID:            request.CreatedByID,
		}
		if err := s.githubRepository.CreateSync(tx, sync); err != nil {
			return fmt.Errorf("failed to create repository sync: %w", err)
		}

		return s.membershipService.UpsertMemberRole(tx, &projects_models.ProjectMember{
			ProjectID:   request.ProjectID,
			MemberID:    request.WorkspaceIntegration.ActorID,
			WorkspaceID: request.WorkspaceID,
			Role:        users_enums.MemberRoleAdmin,
			CreatedByID: request.CreatedByID,
		})
	})
	if err != nil {
		return nil, err
	}

	return sync, nil
}

func (s *IntegrationService) GetProjectGithubRepositories(
	projectID uuid.UUID,
) ([]*integrations_models.GithubRepository, error) {
	return s.githubRepository.GetProjectRepositories(projectID)
}

func (s *IntegrationService) GetProjectGithubSyncs(
	projectID uuid.UUID,
) ([]*integrations_models.GithubRepositorySync, error) {
	return s.githubRepository.GetProjectSyncs(projectID)
}
