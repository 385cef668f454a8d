package users_controllers

import (
	users_services "importhub/internal/features/users/services"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	userService:   users_services.GetUserService(),
	signinLimiter: rate.NewLimiter(rate.Limit(3), 3),
}

func GetUserController() *UserController {
	return userController
}
