package importers_controllers

import (
	"errors"
	"net/http"

	importers_dto "importhub/internal/features/importers/dto"
	importers_enums "importhub/internal/features/importers/enums"
	importers_services "importhub/internal/features/importers/services"
	projects_services "importhub/internal/features/projects/services"
	users_middleware "importhub/internal/features/users/middleware"
	workspaces_services "importhub/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImporterController struct {
	importerService *importers_services.ImporterService
}

func (c *ImporterController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces/:workspaceId/projects/:projectId/importers/:service", c.CreateImporter)
	router.GET("/workspaces/:workspaceId/importers", c.GetWorkspaceImporters)
	router.GET("/workspaces/:workspaceId/importers/:importerId", c.GetWorkspaceImporter)
}

// CreateImporter
// @Summary Start an import
// @Description Store an import job for the project and schedule its processing. Only workspace admins can import
// @Tags importers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Param service path string true "Import service" Enums(github, jira)
// @Param request body importers_dto.CreateImporterRequestDTO true "Imported data"
// @Success 200 {object} importers_models.ImportJob
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /workspaces/{workspaceId}/projects/{projectId}/importers/{service} [post]
func (c *ImporterController) CreateImporter(ctx *gin.Context) {
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

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request importers_dto.CreateImporterRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	job, err := c.importerService.CreateImporter(
		workspaceID,
		projectID,
		importers_enums.ImportService(ctx.Param("service")),
		&request,
		user,
	)
	if err != nil {
		switch {
		case errors.Is(err, importers_services.ErrUnknownImportService),
			errors.Is(err, importers_services.ErrInvalidImporterData):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, workspaces_services.ErrWorkspaceNotFound),
			errors.Is(err, projects_services.ErrProjectNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, importers_services.ErrInsufficientToImport):
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, importers_services.ErrTooManyImports):
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, job)
}

// GetWorkspaceImporters
// @Summary List imports of a workspace
// @Tags importers
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} importers_dto.ListImportersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{workspaceId}/importers [get]
func (c *ImporterController) GetWorkspaceImporters(ctx *gin.Context) {
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

	response, err := c.importerService.GetWorkspaceImporters(workspaceID, user)
	if err != nil {
		writeViewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkspaceImporter
// @Summary Get an import of a workspace
// @Tags importers
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param importerId path string true "Importer ID"
// @Success 200 {object} importers_models.ImportJob
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{workspaceId}/importers/{importerId} [get]
func (c *ImporterController) GetWorkspaceImporter(ctx *gin.Context) {
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

	importerID, err := uuid.Parse(ctx.Param("importerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid importer ID"})
		return
	}

	job, err := c.importerService.GetWorkspaceImporter(workspaceID, importerID, user)
	if err != nil {
		writeViewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, job)
}

func writeViewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, workspaces_services.ErrWorkspaceNotFound),
		errors.Is(err, importers_services.ErrImporterNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, importers_services.ErrInsufficientToView):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
