package importers_services

import (
	"errors"
	"fmt"

	audit_logs "importhub/internal/features/audit_logs"
	importers_dto "importhub/internal/features/importers/dto"
	importers_enums "importhub/internal/features/importers/enums"
	importers_models "importhub/internal/features/importers/models"
	importers_repositories "importhub/internal/features/importers/repositories"
	projects_services "importhub/internal/features/projects/services"
	"importhub/internal/features/tasks"
	users_models "importhub/internal/features/users/models"
	workspaces_services "importhub/internal/features/workspaces/services"
	"importhub/internal/util/rate_limit"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrImporterNotFound     = errors.New("importer not found")
	ErrUnknownImportService = errors.New("unknown import service")
	ErrInvalidImporterData  = errors.New("invalid importer data")
	ErrInsufficientToImport = errors.New("insufficient permissions to import into workspace")
	ErrInsufficientToView   = errors.New("insufficient permissions to view importers")
	ErrTooManyImports       = errors.New("too many imports started in workspace, try again later")
)

const (
	importsPerSecondLimit = 1
	importsBurstLimit     = 5
)

// ImportRateLimiter bounds how often imports are started in one workspace.
type ImportRateLimiter interface {
	CheckRateLimit(scopeID uuid.UUID, rpsLimit, burstLimit int) (*rate_limit.RateLimitResult, error)
}

type ImporterService struct {
	importerRepository *importers_repositories.ImporterRepository
	workspaceService   *workspaces_services.WorkspaceService
	projectService     *projects_services.ProjectService
	auditLogService    *audit_logs.AuditLogService
	taskDispatcher     *tasks.TaskDispatcher
	rateLimiter        ImportRateLimiter
}

func (s *ImporterService) SetTaskDispatcher(dispatcher *tasks.TaskDispatcher) {
	s.taskDispatcher = dispatcher
}

func (s *ImporterService) SetRateLimiter(rateLimiter ImportRateLimiter) {
	s.rateLimiter = rateLimiter
}

// CreateImporter stores a pending import job for the project and hands it
// over to the background workers.
func (s *ImporterService) CreateImporter(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	service importers_enums.ImportService,
	request *importers_dto.CreateImporterRequestDTO,
	user *users_models.User,
) (*importers_models.ImportJob, error) {
	if !service.IsValid() {
		return nil, ErrUnknownImportService
	}

	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return nil, err
	}

	canManage, err := s.workspaceService.CanUserManageWorkspace(workspaceID, user)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, ErrInsufficientToImport
	}

	if _, err := s.projectService.GetWorkspaceProject(workspaceID, projectID); err != nil {
		return nil, err
	}

	limit, err := s.rateLimiter.CheckRateLimit(workspaceID, importsPerSecondLimit, importsBurstLimit)
	if err != nil {
		return nil, err
	}
	if !limit.Allowed {
		return nil, fmt.Errorf("%w (retry after %d seconds)", ErrTooManyImports, limit.RetryAfterSec)
	}

	job := &importers_models.ImportJob{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		CreatedByID: &user.ID,
		Service:     service,
		Status:      importers_enums.ImporterStatusPending,
		Data:        jsonOrEmptyObject(request.Data),
		Config:      jsonOrEmptyObject(request.Config),
		Metadata:    jsonOrEmptyObject(request.Metadata),
	}

	if _, err := job.GetData(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImporterData, err.Error())
	}
	if _, err := job.GetConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImporterData, err.Error())
	}
	if _, err := job.GetMetadata(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImporterData, err.Error())
	}

	if err := s.importerRepository.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create importer: %w", err)
	}

	if _, err := s.taskDispatcher.DispatchServiceImporter(string(service), job.ID); err != nil {
		if updateErr := s.importerRepository.UpdateStatus(job.ID, importers_enums.ImporterStatusFailed); updateErr != nil {
			return nil, fmt.Errorf("failed to mark importer as failed: %w", updateErr)
		}

		return nil, fmt.Errorf("failed to schedule importer: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Import from %s started", service),
		&user.ID,
		&workspaceID,
		&projectID,
	)

	return job, nil
}

func (s *ImporterService) GetWorkspaceImporters(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*importers_dto.ListImportersResponseDTO, error) {
	if err := s.checkCanView(workspaceID, user); err != nil {
		return nil, err
	}

	jobs, err := s.importerRepository.GetWorkspaceImporters(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get importers: %w", err)
	}

	return &importers_dto.ListImportersResponseDTO{Importers: jobs}, nil
}

func (s *ImporterService) GetWorkspaceImporter(
	workspaceID uuid.UUID,
	importerID uuid.UUID,
	user *users_models.User,
) (*importers_models.ImportJob, error) {
	if err := s.checkCanView(workspaceID, user); err != nil {
		return nil, err
	}

	job, err := s.importerRepository.GetByID(importerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get importer: %w", err)
	}

	if job == nil || job.WorkspaceID != workspaceID {
		return nil, ErrImporterNotFound
	}

	return job, nil
}

func (s *ImporterService) checkCanView(workspaceID uuid.UUID, user *users_models.User) error {
	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return err
	}

	canAccess, _, err := s.workspaceService.CanUserAccessWorkspace(workspaceID, user)
	if err != nil {
		return err
	}
	if !canAccess {
		return ErrInsufficientToView
	}

	return nil
}

func jsonOrEmptyObject(value datatypes.JSON) datatypes.JSON {
	if len(value) == 0 || string(value) == "null" {
		return datatypes.JSON("{}")
	}

	return value
}
