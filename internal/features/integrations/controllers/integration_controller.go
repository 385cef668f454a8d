package integrations_controllers

import (
	"errors"
	"net/http"

	integrations_dto "importhub/internal/features/integrations/dto"
	integrations_enums "importhub/internal/features/integrations/enums"
	integrations_services "importhub/internal/features/integrations/services"
	users_middleware "importhub/internal/features/users/middleware"
	workspaces_services "importhub/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IntegrationController struct {
	integrationService *integrations_services.IntegrationService
}

func (c *IntegrationController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces/:workspaceId/integrations/:provider", c.InstallIntegration)
	router.GET("/workspaces/:workspaceId/integrations", c.GetWorkspaceIntegrations)
}

// InstallIntegration
// @Summary Install an integration
// @Description Install a provider into the workspace. A bot account is created to act for it
// @Tags integrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param provider path string true "Provider" Enums(github, slack)
// @Param request body integrations_dto.InstallIntegrationRequestDTO false "Integration config"
// @Success 200 {object} integrations_models.WorkspaceIntegration
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/{workspaceId}/integrations/{provider} [post]
func (c *IntegrationController) InstallIntegration(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	request := &integrations_dto.InstallIntegrationRequestDTO{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	provider := integrations_enums.IntegrationProvider(ctx.Param("provider"))

	response, err := c.integrationService.InstallIntegration(workspaceID, provider, request, user)
	if err != nil {
		switch {
		case errors.Is(err, integrations_services.ErrUnknownProvider):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, workspaces_services.ErrWorkspaceNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, integrations_services.ErrInsufficientToInstall):
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, integrations_services.ErrIntegrationAlreadyInstalled):
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkspaceIntegrations
// @Summary List installed integrations
// @Description Get integrations installed into the workspace
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} integrations_dto.ListWorkspaceIntegrationsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{workspaceId}/integrations [get]
func (c *IntegrationController) GetWorkspaceIntegrations(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	response, err := c.integrationService.GetWorkspaceIntegrations(workspaceID, user)
	if err != nil {
		if errors.Is(err, integrations_services.ErrInsufficientToView) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
