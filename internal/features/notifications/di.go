package notifications

import (
	users_services "importhub/internal/features/users/services"
	"importhub/internal/util/logger"
)

var welcomeEmailService = NewWelcomeEmailService(
	users_services.GetUserService(),
	NewLogMailer(logger.GetLogger()),
	logger.GetLogger(),
)

func GetWelcomeEmailService() *WelcomeEmailService {
	return welcomeEmailService
}
