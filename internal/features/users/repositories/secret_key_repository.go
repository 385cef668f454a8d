package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	users_models "importhub/internal/features/users/models"
	"importhub/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SecretKeyRepository struct{}

// GetSecretKey returns the JWT signing secret, generating and storing one on
// first use.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	var secretKey users_models.SecretKey

	err := storage.GetDb().First(&secretKey).Error
	if err == nil {
		return secretKey.Secret, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	secretKey = users_models.SecretKey{Secret: hex.EncodeToString(randomBytes)}
	if err := storage.GetDb().Clauses(clause.OnConflict{DoNothing: true}).Create(&secretKey).Error; err != nil {
		return "", err
	}

	// another instance may have won the race
	if err := storage.GetDb().First(&secretKey).Error; err != nil {
		return "", err
	}

	return secretKey.Secret, nil
}
