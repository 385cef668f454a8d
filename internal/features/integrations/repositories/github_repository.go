package integrations_repositories

import (
	"time"

	integrations_models "importhub/internal/features/integrations/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GithubRepositoryRepository struct{}

// Transaction runs fn in a single database transaction. The tx methods below
// must be called with the tx passed to fn.
func (r *GithubRepositoryRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return storage.GetDb().Transaction(fn)
}

// DeleteProjectSync removes the sync rows and then the repositories of the
// project.
func (r *GithubRepositoryRepository) DeleteProjectSync(tx *gorm.DB, projectID uuid.UUID) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&integrations_models.GithubRepositorySync{}).Error; err != nil {
		return err
	}

	return tx.Where("project_id = ?", projectID).Delete(&integrations_models.GithubRepository{}).Error
}

func (r *GithubRepositoryRepository) CreateRepository(tx *gorm.DB, repository *integrations_models.GithubRepository) error {
	if repository.ID == uuid.Nil {
		repository.ID = uuid.New()
	}
	if repository.CreatedAt.IsZero() {
		repository.CreatedAt = time.Now().UTC()
	}

	return tx.Create(repository).Error
}

func (r *GithubRepositoryRepository) CreateSync(tx *gorm.DB, sync *integrations_models.GithubRepositorySync) error {
	if sync.ID == uuid.Nil {
		sync.ID = uuid.New()
	}
	if sync.CreatedAt.IsZero() {
		sync.CreatedAt = time.Now().UTC()
	}

	return tx.Create(sync).Error
}

func (r *GithubRepositoryRepository) GetProjectRepositories(
	projectID uuid.UUID,
) ([]*integrations_models.GithubRepository, error) {
	repositories := make([]*integrations_models.GithubRepository, 0)

	err := storage.GetDb().Where("project_id = ?", projectID).Find(&repositories).Error

	return repositories, err
}

func (r *GithubRepositoryRepository) GetProjectSyncs(
	projectID uuid.UUID,
) ([]*integrations_models.GithubRepositorySync, error) {
	syncs := make([]*integrations_models.GithubRepositorySync, 0)

	err := storage.GetDb().Where("project_id = ?", projectID).Find(&syncs).Error

	return syncs, err
}
