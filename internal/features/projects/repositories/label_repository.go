package projects_repositories

import (
	"time"

	projects_models "importhub/internal/features/projects/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LabelRepository struct{}

// EnsureLabel inserts the label unless the project already has one with the
// same name, then returns the stored row.
func (r *LabelRepository) EnsureLabel(tx *gorm.DB, label *projects_models.Label) (*projects_models.Label, error) {
	if label.ID == uuid.Nil {
		label.ID = uuid.New()
	}
	if label.CreatedAt.IsZero() {
		label.CreatedAt = time.Now().UTC()
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(label).Error
	if err != nil {
		return nil, err
	}

	var stored projects_models.Label
	if err := tx.Where("project_id = ? AND name = ?", label.ProjectID, label.Name).First(&stored).Error; err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *LabelRepository) GetProjectLabels(projectID uuid.UUID) ([]*projects_models.Label, error) {
	labels := make([]*projects_models.Label, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&labels).Error

	return labels, err
}
