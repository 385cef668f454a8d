package integrations_services

import (
	audit_logs "importhub/internal/features/audit_logs"
	integrations_repositories "importhub/internal/features/integrations/repositories"
	projects_services "importhub/internal/features/projects/services"
	users_services "importhub/internal/features/users/services"
	workspaces_services "importhub/internal/features/workspaces/services"
)

var integrationService = &IntegrationService{
	&integrations_repositories.IntegrationRepository{},
	&integrations_repositories.GithubRepositoryRepository{},
	users_services.GetUserService(),
	workspaces_services.GetWorkspaceService(),
	projects_services.GetProjectService(),
	projects_services.GetMembershipService(),
	audit_logs.GetAuditLogService(),
}

func GetIntegrationService() *IntegrationService {
	return integrationService
}
