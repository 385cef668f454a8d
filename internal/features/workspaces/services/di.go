package workspaces_services

import (
	audit_logs "importhub/internal/features/audit_logs"
	workspaces_repositories "importhub/internal/features/workspaces/repositories"
)

var workspaceRepository = &workspaces_repositories.WorkspaceRepository{}
var membershipRepository = &workspaces_repositories.MembershipRepository{}

var workspaceService = &WorkspaceService{
	workspaceRepository,
	membershipRepository,
	audit_logs.GetAuditLogService(),
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}
