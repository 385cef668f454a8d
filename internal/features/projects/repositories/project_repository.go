package projects_repositories

import (
	"errors"
	"time"

	projects_models "importhub/internal/features/projects/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProjectWithOwner(
	project *projects_models.Project,
	owner *projects_models.ProjectMember,
) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		owner.ProjectID = project.ID
		prepareMembers([]*projects_models.ProjectMember{owner})

		return tx.Create(owner).Error
	})
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetWorkspaceProjects(workspaceID uuid.UUID) ([]*projects_models.Project, error) {
	projects := make([]*projects_models.Project, 0)

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&projects).Error

	return projects, err
}
