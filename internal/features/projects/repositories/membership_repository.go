package projects_repositories

import (
	"errors"
	"time"

	projects_dto "importhub/internal/features/projects/dto"
	projects_models "importhub/internal/features/projects/models"
	users_enums "importhub/internal/features/users/enums"
	"importhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct{}

// AddMembersIgnoringConflicts inserts memberships in batches. Existing
// memberships are left as they are.
func (r *MembershipRepository) AddMembersIgnoringConflicts(
	members []*projects_models.ProjectMember,
	batchSize int,
) error {
	if len(members) == 0 {
		return nil
	}

	prepareMembers(members)

	return storage.GetDb().
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(members, batchSize).Error
}

// UpsertMemberRole creates the membership or overwrites the role of the
// existing one.
func (r *MembershipRepository) UpsertMemberRole(tx *gorm.DB, member *projects_models.ProjectMember) error {
	prepareMembers([]*projects_models.ProjectMember{member})

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(member).Error
}

func (r *MembershipRepository) GetProjectMembers(
	projectID uuid.UUID,
) ([]*projects_dto.ProjectMemberResponseDTO, error) {
	members := make([]*projects_dto.ProjectMemberResponseDTO, 0)

	err := storage.GetDb().
		Table("project_members pm").
		Select("pm.id, pm.member_id, u.email, u.is_bot, pm.role, pm.created_at").
		Joins("JOIN users u ON pm.member_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) GetUserProjectRole(projectID, userID uuid.UUID) (*users_enums.MemberRole, error) {
	var membership projects_models.ProjectMember
	err := storage.GetDb().
		Where("project_id = ? AND member_id = ?", projectID, userID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership.Role, nil
}

func prepareMembers(members []*projects_models.ProjectMember) {
	for _, member := range members {
		if member.ID == uuid.Nil {
			member.ID = uuid.New()
		}

		if member.CreatedAt.IsZero() {
			member.CreatedAt = time.Now().UTC()
		}
	}
}
