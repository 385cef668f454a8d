package users_repositories

import (
	"errors"
	"fmt"
	users_enums "importhub/internal/features/users/enums"
	users_models "importhub/internal/features/users/models"
	"importhub/internal/storage"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const RootAdminEmail = "admin"

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	return storage.GetDb().Create(user).Error
}

// CreateUsersIgnoringConflicts inserts users in batches and silently skips
// rows whose email or username already exists.
func (r *UserRepository) CreateUsersIgnoringConflicts(users []*users_models.User, batchSize int) error {
	if len(users) == 0 {
		return nil
	}

	return storage.GetDb().
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(users, batchSize).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUsersByEmails(emails []string) ([]*users_models.User, error) {
	users := make([]*users_models.User, 0)
	if len(emails) == 0 {
		return users, nil
	}

	err := storage.GetDb().
		Where("email IN ?", emails).
		Order("email ASC").
		Find(&users).Error

	return users, err
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"hashed_password":        hashedPassword,
			"password_creation_time": time.Now().UTC(),
			"is_password_autoset":    false,
		}).Error
}

func (r *UserRepository) CreateInitialAdmin() error {
	admin, err := r.GetUserByEmail(RootAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin != nil {
		return nil
	}

	admin = &users_models.User{
		ID:                   uuid.New(),
		Email:                RootAdminEmail,
		Username:             RootAdminEmail,
		HashedPassword:       nil,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleAdmin,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	return storage.GetDb().Create(admin).Error
}

func (r *UserRepository) RenameUserEmailForTests(oldEmail, newEmail string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("email = ?", oldEmail).
		Updates(map[string]any{
			"email":    newEmail,
			"username": strings.ReplaceAll(newEmail, "@", "-"),
		}).Error
}
