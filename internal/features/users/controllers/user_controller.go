package users_controllers

import (
	"errors"
	"net/http"

	users_dto "importhub/internal/features/users/dto"
	users_middleware "importhub/internal/features/users/middleware"
	users_services "importhub/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type UserController struct {
	userService   *users_services.UserService
	signinLimiter *rate.Limiter
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users/signin", c.SignIn)

	// the root admin sets its first password before anyone can sign in
	router.GET("/users/admin/has-password", c.IsAdminHasPassword)
	router.POST("/users/admin/set-password", c.SetAdminPassword)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", c.GetCurrentUser)
}

func (c *UserController) SetSignInLimiter(limiter *rate.Limiter) {
	c.signinLimiter = limiter
}

// SignIn
// @Summary Sign in
// @Description Exchange email and password for an access token. Imported accounts and bots cannot sign in until a password is chosen
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "Credentials"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /users/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	if !c.signinLimiter.Allow() {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many sign in attempts, try again later"})
		return
	}

	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignIn(&request)
	if err != nil {
		switch {
		case errors.Is(err, users_services.ErrBotSignIn),
			errors.Is(err, users_services.ErrPasswordAutoset),
			errors.Is(err, users_services.ErrUserDeactivated):
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, users_services.ErrUserNotFound),
			errors.Is(err, users_services.ErrIncorrectPassword),
			errors.Is(err, users_services.ErrPasswordNotSet):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// IsAdminHasPassword
// @Summary Check root admin password
// @Description Report whether the root admin account already has a password
// @Tags users
// @Produce json
// @Success 200 {object} users_dto.IsAdminHasPasswordResponseDTO
// @Failure 500 {object} map[string]string
// @Router /users/admin/has-password [get]
func (c *UserController) IsAdminHasPassword(ctx *gin.Context) {
	hasPassword, err := c.userService.IsRootAdminHasPassword()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, users_dto.IsAdminHasPasswordResponseDTO{HasPassword: hasPassword})
}

// SetAdminPassword
// @Summary Set root admin password
// @Description Set the first password of the root admin account. Fails once a password exists
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SetAdminPasswordRequestDTO true "New password, at least 8 characters"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users/admin/set-password [post]
func (c *UserController) SetAdminPassword(ctx *gin.Context) {
	var request users_dto.SetAdminPasswordRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	if err := c.userService.SetRootAdminPassword(request.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Admin password set"})
}

// GetCurrentUser
// @Summary Get current user profile
// @Description Profile of the signed in account, including whether its password was generated on import
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, c.userService.GetCurrentUserProfile(user))
}
