package migrations

import (
	"fmt"

	audit_logs "importhub/internal/features/audit_logs"
	importers_models "importhub/internal/features/importers/models"
	integrations_models "importhub/internal/features/integrations/models"
	projects_models "importhub/internal/features/projects/models"
	users_models "importhub/internal/features/users/models"
	workspaces_models "importhub/internal/features/workspaces/models"

	"gorm.io/gorm"
)

// Run brings the schema up to date. Tables are only created or extended,
// never dropped.
func Run(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users_models.User{},
		&users_models.SecretKey{},
		&workspaces_models.Workspace{},
		&workspaces_models.WorkspaceMember{},
		&projects_models.Project{},
		&projects_models.ProjectMember{},
		&projects_models.Label{},
		&integrations_models.Integration{},
		&integrations_models.WorkspaceIntegration{},
		&integrations_models.GithubRepository{},
		&integrations_models.GithubRepositorySync{},
		&importers_models.ImportJob{},
		&audit_logs.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
