package workspaces_repositories

import (
	"errors"

	workspaces_dto "importhub/internal/features/workspaces/dto"
	workspaces_models "importhub/internal/features/workspaces/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

// CreateWithOwner stores the workspace and its first member atomically.
func (r *WorkspaceRepository) CreateWithOwner(
	workspace *workspaces_models.Workspace,
	owner *workspaces_models.WorkspaceMember,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}

		return tx.Create(owner).Error
	})
}

func (r *WorkspaceRepository) GetByID(workspaceID uuid.UUID) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetBySlug(slug string) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("slug = ?", slug).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetUserWorkspaces(userID uuid.UUID) ([]workspaces_dto.WorkspaceResponseDTO, error) {
	results := make([]workspaces_dto.WorkspaceResponseDTO, 0)

	err := storage.GetDb().
		Table("workspaces w").
		Select("w.id, w.name, w.slug, w.created_at, wm.role as user_role").
		Joins("JOIN workspace_members wm ON w.id = wm.workspace_id").
		Where("wm.member_id = ?", userID).
		Order("w.name ASC").
		Scan(&results).Error

	return results, err
}
