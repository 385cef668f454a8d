package workspaces_repositories

import (
	"errors"
	"time"

	users_enums "importhub/internal/features/users/enums"
	workspaces_models "importhub/internal/features/workspaces/models"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct{}

// AddMembersIgnoringConflicts inserts memberships in batches. Users that are
// already members keep their existing row untouched.
func (r *MembershipRepository) AddMembersIgnoringConflicts(
	members []*workspaces_models.WorkspaceMember,
	batchSize int,
) error {
	if len(members) == 0 {
		return nil
	}

	for _, member := range members {
		if member.ID == uuid.Nil {
			member.ID = uuid.New()
		}

		if member.CreatedAt.IsZero() {
			member.CreatedAt = time.Now().UTC()
		}
	}

	return storage.GetDb().
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(members, batchSize).Error
}

func (r *MembershipRepository) GetMember(workspaceID, userID uuid.UUID) (*workspaces_models.WorkspaceMember, error) {
	var member workspaces_models.WorkspaceMember

	err := storage.GetDb().
		Where("workspace_id = ? AND member_id = ?", workspaceID, userID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

func (r *MembershipRepository) GetUserWorkspaceRole(workspaceID, userID uuid.UUID) (*users_enums.MemberRole, error) {
	member, err := r.GetMember(workspaceID, userID)
	if err != nil || member == nil {
		return nil, err
	}

	return &member.Role, nil
}

func (r *MembershipRepository) GetWorkspaceMembers(workspaceID uuid.UUID) ([]*workspaces_models.WorkspaceMember, error) {
	members := make([]*workspaces_models.WorkspaceMember, 0)

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&members).Error

	return members, err
}
