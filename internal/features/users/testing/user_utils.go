package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "importhub/internal/features/users/dto"
	users_enums "importhub/internal/features/users/enums"
	users_models "importhub/internal/features/users/models"
	users_repositories "importhub/internal/features/users/repositories"
	users_services "importhub/internal/features/users/services"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	return CreateTestUserWithPassword(role, "testpassword123")
}

func CreateTestUserWithPassword(role users_enums.UserRole, password string) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	// MinCost keeps test setup fast
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	hashedPassword := string(hashed)
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		Username:             strings.ReplaceAll(userID.String(), "-", ""),
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

// CreateExistingUser stores an account with the given email and returns it.
func CreateExistingUser(email string) *users_models.User {
	userID := uuid.New()
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		Username:             strings.ReplaceAll(userID.String(), "-", ""),
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 users_enums.UserRoleMember,
		Status:               users_enums.UserStatusActive,
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	return user
}

func RecreateInitialAdmin() {
	userRepository := &users_repositories.UserRepository{}
	err := userRepository.RenameUserEmailForTests(
		users_repositories.RootAdminEmail,
		"admin-"+uuid.New().String(),
	)
	if err != nil {
		panic(err)
	}

	if err := users_services.GetUserService().CreateInitialAdmin(); err != nil {
		panic(err)
	}
}

func GetUser(userID uuid.UUID) (*users_models.User, error) {
	return users_services.GetUserService().GetUserByID(userID)
}
