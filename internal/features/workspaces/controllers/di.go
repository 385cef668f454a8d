package workspaces_controllers

import (
	workspaces_services "importhub/internal/features/workspaces/services"
)

var workspaceController = &WorkspaceController{
	workspaceService: workspaces_services.GetWorkspaceService(),
}

func GetWorkspaceController() *WorkspaceController {
	return workspaceController
}
