package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"importhub/internal/features/tasks"
	users_models "importhub/internal/features/users/models"

	"github.com/google/uuid"
)

const welcomeEmailSubject = "Welcome to importhub"

type UserGetter interface {
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
}

// WelcomeEmailService consumes send_welcome_email tasks.
type WelcomeEmailService struct {
	userGetter UserGetter
	mailer     Mailer
	logger     *slog.Logger
}

func NewWelcomeEmailService(userGetter UserGetter, mailer Mailer, logger *slog.Logger) *WelcomeEmailService {
	return &WelcomeEmailService{
		userGetter: userGetter,
		mailer:     mailer,
		logger:     logger,
	}
}

func (s *WelcomeEmailService) SetMailer(mailer Mailer) {
	s.mailer = mailer
}

// HandleTask is registered as the send_welcome_email task handler.
func (s *WelcomeEmailService) HandleTask(ctx context.Context, payload json.RawMessage) error {
	var request tasks.SendWelcomeEmailPayload
	if err := json.Unmarshal(payload, &request); err != nil {
		return fmt.Errorf("failed to decode welcome email payload: %w", err)
	}

	return s.SendWelcomeEmail(ctx, &request)
}

func (s *WelcomeEmailService) SendWelcomeEmail(ctx context.Context, request *tasks.SendWelcomeEmailPayload) error {
	user, err := s.userGetter.GetUserByID(request.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", request.UserID, err)
	}

	if user.IsBot {
		s.logger.Debug("Skipping welcome email for bot account", slog.String("userID", user.ID.String()))
		return nil
	}

	if err := s.mailer.Send(ctx, user.Email, welcomeEmailSubject, buildWelcomeEmailBody(user, request)); err != nil {
		return err
	}

	s.logger.Info("Welcome email sent",
		slog.String("userID", user.ID.String()),
		slog.Bool("isNewUser", request.IsNewUser),
		slog.String("reason", request.Reason))

	return nil
}

func buildWelcomeEmailBody(user *users_models.User, request *tasks.SendWelcomeEmailPayload) string {
	body := fmt.Sprintf("Hello %s,\n\n", user.Email)

	if request.Reason != "" {
		body += request.Reason + ".\n\n"
	}

	if request.IsNewUser && !user.HasPassword() {
		body += "An account was created for you. Sign in with this email after choosing a password.\n"
	} else {
		body += "You can sign in with your existing account.\n"
	}

	return body
}
