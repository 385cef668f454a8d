package importers_services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	audit_logs "importhub/internal/features/audit_logs"
	importers_enums "importhub/internal/features/importers/enums"
	importers_models "importhub/internal/features/importers/models"
	importers_repositories "importhub/internal/features/importers/repositories"
	integrations_enums "importhub/internal/features/integrations/enums"
	integrations_services "importhub/internal/features/integrations/services"
	projects_models "importhub/internal/features/projects/models"
	projects_services "importhub/internal/features/projects/services"
	"importhub/internal/features/tasks"
	users_enums "importhub/internal/features/users/enums"
	users_services "importhub/internal/features/users/services"
	workspaces_models "importhub/internal/features/workspaces/models"
	workspaces_services "importhub/internal/features/workspaces/services"
	"importhub/internal/util/error_reporting"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportFinalizerService completes an import job in the background: it
// provisions the imported users, attaches them to the workspace and the
// project, links the GitHub repository when sync is requested and notifies
// the proxy.
type ImportFinalizerService struct {
	importerRepository *importers_repositories.ImporterRepository
	userService        *users_services.UserService
	workspaceService   *workspaces_services.WorkspaceService
	membershipService  *projects_services.MembershipService
	integrationService *integrations_services.IntegrationService
	auditLogService    *audit_logs.AuditLogService
	taskDispatcher     *tasks.TaskDispatcher
	proxyNotifier      *ProxyNotifier
	errorReporter      error_reporting.ErrorReporter
	logger             *slog.Logger
}

func (s *ImportFinalizerService) SetTaskDispatcher(dispatcher *tasks.TaskDispatcher) {
	s.taskDispatcher = dispatcher
}

func (s *ImportFinalizerService) SetProxyNotifier(notifier *ProxyNotifier) {
	s.proxyNotifier = notifier
}

func (s *ImportFinalizerService) SetErrorReporter(reporter error_reporting.ErrorReporter) {
	s.errorReporter = reporter
}

// HandleTask runs the finalizer for a service_importer task. Failures are
// recorded on the job, so the task itself never fails.
func (s *ImportFinalizerService) HandleTask(ctx context.Context, payload json.RawMessage) error {
	var importerPayload tasks.ServiceImporterPayload
	if err := json.Unmarshal(payload, &importerPayload); err != nil {
		return fmt.Errorf("invalid service importer payload: %w", err)
	}

	s.Run(ctx, importers_enums.ImportService(importerPayload.Service), importerPayload.ImporterID)

	return nil
}

// Run finalizes the job. Only a pending job is processed, so running it again
// for a job that already started or finished is a no-op. Any error marks the
// job as failed and is reported, it is never returned to the caller.
func (s *ImportFinalizerService) Run(ctx context.Context, service importers_enums.ImportService, jobID uuid.UUID) {
	logger := s.logger.With(
		slog.String("service", string(service)),
		slog.String("importerID", jobID.String()),
	)

	if err := s.finalize(ctx, service, jobID, logger); err != nil {
		s.fail(service, jobID, err, logger)
	}
}

func (s *ImportFinalizerService) finalize(
	ctx context.Context,
	service importers_enums.ImportService,
	jobID uuid.UUID,
	logger *slog.Logger,
) error {
	job, err := s.importerRepository.GetByID(jobID)
	if err != nil {
		return fmt.Errorf("failed to load importer: %w", err)
	}

	if job == nil {
		return ErrImporterNotFound
	}

	if job.Status != importers_enums.ImporterStatusPending {
		logger.Warn("Importer is not pending, skipping", slog.String("status", string(job.Status)))
		return nil
	}

	if err := s.importerRepository.UpdateStatus(job.ID, importers_enums.ImporterStatusProcessing); err != nil {
		return fmt.Errorf("failed to mark importer as processing: %w", err)
	}
	job.Status = importers_enums.ImporterStatusProcessing

	data, err := job.GetData()
	if err != nil {
		return err
	}

	config, err := job.GetConfig()
	if err != nil {
		return err
	}

	if err := s.importUsers(job, service, data, logger); err != nil {
		return err
	}

	if service == importers_enums.ImportServiceGithub && config.Sync {
		if err := s.syncGithubRepository(job, data); err != nil {
			return err
		}
	}

	if s.proxyNotifier.IsEnabled() {
		if err := s.proxyNotifier.NotifyImportFinished(ctx, job); err != nil {
			return err
		}
	}

	if err := s.importerRepository.UpdateStatus(job.ID, importers_enums.ImporterStatusCompleted); err != nil {
		return fmt.Errorf("failed to mark importer as completed: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Import from %s completed", service),
		job.CreatedByID,
		&job.WorkspaceID,
		&job.ProjectID,
	)

	logger.Info("Importer completed", slog.Int("users", len(data.Users)))

	return nil
}

func (s *ImportFinalizerService) importUsers(
	job *importers_models.ImportJob,
	service importers_enums.ImportService,
	data *importers_models.ImportData,
	logger *slog.Logger,
) error {
	inviteEmails, memberEmails := collectImportEmails(data.Users)
	if len(memberEmails) == 0 {
		return nil
	}

	if len(inviteEmails) > 0 {
		createdUsers, err := s.userService.CreateImportedUsers(inviteEmails)
		if err != nil {
			return err
		}

		for _, user := range createdUsers {
			reason := fmt.Sprintf("%s was imported from %s", user.Email, service)
			if _, err := s.taskDispatcher.DispatchWelcomeEmail(user.ID, true, reason); err != nil {
				logger.Warn(
					"Failed to dispatch welcome email",
					slog.String("userID", user.ID.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	users, err := s.userService.GetUsersByEmails(memberEmails)
	if err != nil {
		return fmt.Errorf("failed to load imported users: %w", err)
	}

	workspaceMembers := make([]*workspaces_models.WorkspaceMember, 0, len(users))
	projectMembers := make([]*projects_models.ProjectMember, 0, len(users))

	for _, user := range users {
		workspaceMembers = append(workspaceMembers, &workspaces_models.WorkspaceMember{
			WorkspaceID: job.WorkspaceID,
			MemberID:    user.ID,
			Role:        users_enums.DefaultMemberRole,
			CreatedByID: job.CreatedByID,
		})

		projectMembers = append(projectMembers, &projects_models.ProjectMember{
			ProjectID:   job.ProjectID,
			WorkspaceID: job.WorkspaceID,
			MemberID:    user.ID,
			Role:        users_enums.DefaultMemberRole,
			CreatedByID: job.CreatedByID,
		})
	}

	if err := s.workspaceService.AddMembers(workspaceMembers); err != nil {
		return err
	}

	return s.membershipService.AddMembers(projectMembers)
}

func (s *ImportFinalizerService) syncGithubRepository(
	job *importers_models.ImportJob,
	data *importers_models.ImportData,
) error {
	metadata, err := job.GetMetadata()
	if err != nil {
		return err
	}

	workspaceIntegration, err := s.integrationService.GetWorkspaceIntegrationByProvider(
		job.WorkspaceID,
		integrations_enums.IntegrationProviderGithub,
	)
	if err != nil {
		return err
	}

	_, err = s.integrationService.ReplaceGithubSync(&integrations_services.GithubSyncRequest{
		WorkspaceID:          job.WorkspaceID,
		ProjectID:            job.ProjectID,
		WorkspaceIntegration: workspaceIntegration,
		Repository:           *metadata,
		Credentials:          datatypes.JSON(data.Credentials),
		CreatedByID:          job.CreatedByID,
	})

	return err
}

func (s *ImportFinalizerService) fail(
	service importers_enums.ImportService,
	jobID uuid.UUID,
	cause error,
	logger *slog.Logger,
) {
	logger.Error("Importer failed", slog.String("error", cause.Error()))

	job, err := s.importerRepository.GetByID(jobID)
	if err != nil {
		logger.Error("Failed to reload importer", slog.String("error", err.Error()))
	}

	if job != nil {
		if err := s.importerRepository.UpdateStatus(job.ID, importers_enums.ImporterStatusFailed); err != nil {
			logger.Error("Failed to mark importer as failed", slog.String("error", err.Error()))
		}

		s.auditLogService.WriteAuditLog(
			fmt.Sprintf("Import from %s failed", service),
			job.CreatedByID,
			&job.WorkspaceID,
			&job.ProjectID,
		)
	}

	s.errorReporter.ReportError(cause, map[string]string{
		"task":       string(tasks.TaskNameServiceImporter),
		"service":    string(service),
		"importerID": jobID.String(),
	})
}

// collectImportEmails returns the normalized emails to create accounts for
// and the normalized emails to grant membership to, both without duplicates.
// Any invite entry puts its email in the first list, whatever other entries
// exist for the same email.
func collectImportEmails(users []importers_models.ImportUser) ([]string, []string) {
	inviteEmails := make([]string, 0, len(users))
	memberEmails := make([]string, 0, len(users))
	seenInvites := make(map[string]struct{}, len(users))
	seenMembers := make(map[string]struct{}, len(users))

	for _, user := range users {
		email := strings.ToLower(strings.TrimSpace(user.Email))
		if email == "" {
			continue
		}

		if user.Import != importers_enums.ImportModeInvite && user.Import != importers_enums.ImportModeMap {
			continue
		}

		if _, ok := seenMembers[email]; !ok {
			seenMembers[email] = struct{}{}
			memberEmails = append(memberEmails, email)
		}

		if user.Import != importers_enums.ImportModeInvite {
			continue
		}

		if _, ok := seenInvites[email]; !ok {
			seenInvites[email] = struct{}{}
			inviteEmails = append(inviteEmails, email)
		}
	}

	return inviteEmails, memberEmails
}
