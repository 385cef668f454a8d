package importers_services

import (
	"importhub/internal/config"
	audit_logs "importhub/internal/features/audit_logs"
	importers_repositories "importhub/internal/features/importers/repositories"
	integrations_services "importhub/internal/features/integrations/services"
	projects_services "importhub/internal/features/projects/services"
	"importhub/internal/features/tasks"
	users_services "importhub/internal/features/users/services"
	workspaces_services "importhub/internal/features/workspaces/services"
	"importhub/internal/util/error_reporting"
	"importhub/internal/util/logger"
	"importhub/internal/util/rate_limit"
)

var importerRepository = &importers_repositories.ImporterRepository{}

var proxyNotifier = NewProxyNotifier(func() string {
	return config.GetEnv().ProxyBaseURL
}, logger.GetLogger())

var importerService = &ImporterService{
	importerRepository,
	workspaces_services.GetWorkspaceService(),
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
	tasks.GetTaskDispatcher(),
	rate_limit.NewRateLimiter("rate_limit:importers:workspace:"),
}

var importFinalizerService = &ImportFinalizerService{
	importerRepository,
	users_services.GetUserService(),
	workspaces_services.GetWorkspaceService(),
	projects_services.GetMembershipService(),
	integrations_services.GetIntegrationService(),
	audit_logs.GetAuditLogService(),
	tasks.GetTaskDispatcher(),
	proxyNotifier,
	error_reporting.NewSentryErrorReporter(nil, logger.GetLogger()),
	logger.GetLogger(),
}

func GetImporterService() *ImporterService {
	return importerService
}

func GetImportFinalizerService() *ImportFinalizerService {
	return importFinalizerService
}
