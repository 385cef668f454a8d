package users_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	users_dto "importhub/internal/features/users/dto"
	users_enums "importhub/internal/features/users/enums"
	users_interfaces "importhub/internal/features/users/interfaces"
	users_models "importhub/internal/features/users/models"
	users_repositories "importhub/internal/features/users/repositories"
)

const importedUsersBatchSize = 10

var (
	ErrUserNotFound      = errors.New("user with this email does not exist")
	ErrIncorrectPassword = errors.New("password is incorrect")
	ErrPasswordNotSet    = errors.New("user has no password set")
	ErrPasswordAutoset   = errors.New("account was imported, ask an administrator to set a password")
	ErrBotSignIn         = errors.New("bot accounts cannot sign in")
	ErrUserDeactivated   = errors.New("user account is deactivated")
)

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
	auditLogWriter      users_interfaces.AuditLogWriter
}

func NewUserService(
	userRepository *users_repositories.UserRepository,
	secretKeyRepository *users_repositories.SecretKeyRepository,
) *UserService {
	return &UserService{
		userRepository:      userRepository,
		secretKeyRepository: secretKeyRepository,
	}
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignIn(request *users_dto.SignInRequestDTO) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.IsBot {
		return nil, ErrBotSignIn
	}

	if !user.IsActiveUser() {
		return nil, ErrUserDeactivated
	}

	if user.HashedPassword == nil {
		return nil, ErrPasswordNotSet
	}

	// imported accounts hold a generated password nobody knows
	if user.IsPasswordAutoset {
		return nil, ErrPasswordAutoset
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, ErrIncorrectPassword
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(fmt.Sprintf("User signed in with email: %s", user.Email), &user.ID)

	return response, nil
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user of token does not exist")
	}

	if !user.IsActiveUser() {
		return nil, ErrUserDeactivated
	}

	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	tokenTimeSeconds := time.Unix(int64(passwordCreationTimeUnix), 0).Truncate(time.Second)
	userTimeSeconds := user.PasswordCreationTime.Truncate(time.Second)

	if !tokenTimeSeconds.Equal(userTimeSeconds) {
		return nil, errors.New("password has been changed, please sign in again")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	expiration := time.Now().UTC().Add(time.Hour * 24 * 30)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"role":                 string(user.Role),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) CreateInitialAdmin() error {
	return s.userRepository.CreateInitialAdmin()
}

func (s *UserService) IsRootAdminHasPassword() (bool, error) {
	admin, err := s.userRepository.GetUserByEmail(users_repositories.RootAdminEmail)
	if err != nil {
		return false, fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		return false, errors.New("admin user does not exist")
	}

	return admin.HasPassword(), nil
}

func (s *UserService) SetRootAdminPassword(password string) error {
	admin, err := s.userRepository.GetUserByEmail(users_repositories.RootAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		return errors.New("admin user does not exist")
	}

	if admin.HasPassword() {
		return errors.New("admin password is already set")
	}

	if err := s.setPassword(admin.ID, password); err != nil {
		return err
	}

	s.writeAuditLog("Admin password set", &admin.ID)

	return nil
}

// ChangeUserPasswordByEmail is used by the --new-password CLI flag, so it
// also works for accounts that never had a password.
func (s *UserService) ChangeUserPasswordByEmail(email string, newPassword string) error {
	user, err := s.userRepository.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return ErrUserNotFound
	}

	if err := s.setPassword(user.ID, newPassword); err != nil {
		return err
	}

	s.writeAuditLog("Password changed", &user.ID)

	return nil
}

// CreateImportedUsers creates accounts for already normalized emails. Every
// account gets a random username and a random password nobody knows, flagged
// as autoset so the owner must choose a real one. Emails that already have
// an account are skipped. Only the accounts inserted by this call are
// returned.
func (s *UserService) CreateImportedUsers(emails []string) ([]*users_models.User, error) {
	candidateIDs := make(map[uuid.UUID]struct{}, len(emails))
	candidates := make([]*users_models.User, 0, len(emails))
	seen := make(map[string]struct{}, len(emails))

	for _, email := range emails {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}

		hashedPassword, err := generateUnusablePasswordHash()
		if err != nil {
			return nil, err
		}

		user := &users_models.User{
			ID:                   uuid.New(),
			Email:                email,
			Username:             generateUsername(),
			HashedPassword:       &hashedPassword,
			PasswordCreationTime: time.Now().UTC(),
			IsPasswordAutoset:    true,
			Role:                 users_enums.UserRoleMember,
			Status:               users_enums.UserStatusActive,
			CreatedAt:            time.Now().UTC(),
		}

		candidateIDs[user.ID] = struct{}{}
		candidates = append(candidates, user)
	}

	if err := s.userRepository.CreateUsersIgnoringConflicts(candidates, importedUsersBatchSize); err != nil {
		return nil, fmt.Errorf("failed to create imported users: %w", err)
	}

	stored, err := s.userRepository.GetUsersByEmails(emails)
	if err != nil {
		return nil, fmt.Errorf("failed to load imported users: %w", err)
	}

	created := make([]*users_models.User, 0, len(stored))
	for _, user := range stored {
		if _, ok := candidateIDs[user.ID]; ok {
			created = append(created, user)
		}
	}

	return created, nil
}

// CreateBotUser creates the service account that acts on behalf of an
// integration.
func (s *UserService) CreateBotUser(displayName string) (*users_models.User, error) {
	hashedPassword, err := generateUnusablePasswordHash()
	if err != nil {
		return nil, err
	}

	username := generateUsername()
	bot := &users_models.User{
		ID:                   uuid.New(),
		Email:                fmt.Sprintf("%s-%s@bots.importhub.local", strings.ToLower(displayName), username[:12]),
		Username:             username,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		IsPasswordAutoset:    true,
		IsBot:                true,
		Role:                 users_enums.UserRoleMember,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(bot); err != nil {
		return nil, fmt.Errorf("failed to create bot user: %w", err)
	}

	return bot, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetUsersByEmails(emails []string) ([]*users_models.User, error) {
	return s.userRepository.GetUsersByEmails(emails)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:                user.ID,
		Email:             user.Email,
		Username:          user.Username,
		Role:              user.Role,
		IsActive:          user.IsActiveUser(),
		IsPasswordAutoset: user.IsPasswordAutoset,
		CreatedAt:         user.CreatedAt,
	}
}

func (s *UserService) setPassword(userID uuid.UUID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *UserService) writeAuditLog(message string, userID *uuid.UUID) {
	if s.auditLogWriter == nil {
		return
	}

	s.auditLogWriter.WriteAuditLog(message, userID, nil, nil)
}

func generateUsername() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func generateUnusablePasswordHash() (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash generated password: %w", err)
	}

	return string(hashedPassword), nil
}
