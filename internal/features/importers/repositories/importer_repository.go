package importers_repositories

import (
	"errors"
	"time"

	importers_enums "importhub/internal/features/importers/enums"
	importers_models "importhub/internal/features/importers/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImporterRepository struct{}

func (r *ImporterRepository) Create(job *importers_models.ImportJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	return storage.GetDb().Create(job).Error
}

func (r *ImporterRepository) GetByID(id uuid.UUID) (*importers_models.ImportJob, error) {
	var job importers_models.ImportJob

	if err := storage.GetDb().Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &job, nil
}

func (r *ImporterRepository) UpdateStatus(id uuid.UUID, status importers_enums.ImporterStatus) error {
	return storage.GetDb().
		Model(&importers_models.ImportJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *ImporterRepository) GetWorkspaceImporters(workspaceID uuid.UUID) ([]*importers_models.ImportJob, error) {
	var jobs []*importers_models.ImportJob

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&jobs).Error

	return jobs, err
}
