package downdetect

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DowndetectController struct {
	downdetectService *DowndetectService
	logger            *slog.Logger
}

func (c *DowndetectController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/downdetect", c.IsAvailable)
}

// IsAvailable
// @Summary Check service availability
// @Description Check database and cache connectivity and report host stats
// @Tags system
// @Produce json
// @Success 200 {object} DowndetectResponseDTO
// @Failure 503 {object} map[string]string
// @Router /system/downdetect [get]
func (c *DowndetectController) IsAvailable(ctx *gin.Context) {
	if err := c.downdetectService.IsAvailable(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	response := &DowndetectResponseDTO{Status: "ok"}

	hostStats, err := c.downdetectService.GetHostStats()
	if err != nil {
		c.logger.Warn("Failed to read host stats", slog.String("error", err.Error()))
	} else {
		response.Host = hostStats
	}

	ctx.JSON(http.StatusOK, response)
}
