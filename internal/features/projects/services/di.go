package projects_services

import (
	"importhub/internal/features/audit_logs"
	projects_repositories "importhub/internal/features/projects/repositories"
	workspaces_services "importhub/internal/features/workspaces/services"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}
var labelRepository = &projects_repositories.LabelRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	labelRepository,
	workspaces_services.GetWorkspaceService(),
	audit_logs.GetAuditLogService(),
}

var membershipService = &MembershipService{
	membershipRepository,
	projectService,
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
