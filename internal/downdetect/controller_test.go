package downdetect

import (
	"errors"
	"net/http"
	"os"
	"testing"

	"importhub/internal/storage"
	"importhub/internal/util/logger"
	test_utils "importhub/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	os.Exit(m.Run())
}

func createRouter(checks ...HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := &DowndetectController{
		NewDowndetectService(checks, "/"),
		logger.GetLogger(),
	}
	controller.RegisterRoutes(router.Group("/api/v1"))

	return router
}

func Test_IsAvailable_WhenAllChecksPass_ReturnsOk(t *testing.T) {
	router := createRouter(HealthCheck{
		Name: "database",
		Check: func() error {
			return storage.GetDb().Exec("SELECT 1").Error
		},
	})

	var response DowndetectResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/system/downdetect", "", http.StatusOK, &response)

	assert.Equal(t, "ok", response.Status)
}

func Test_IsAvailable_WhenCheckFails_ReturnsServiceUnavailable(t *testing.T) {
	cacheChecked := false
	router := createRouter(
		HealthCheck{Name: "database", Check: func() error { return errors.New("connection refused") }},
		HealthCheck{Name: "cache", Check: func() error { cacheChecked = true; return nil }},
	)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/system/downdetect", "", http.StatusServiceUnavailable)

	assert.Contains(t, string(resp.Body), "database check failed: connection refused")
	assert.False(t, cacheChecked)
}

func Test_IsAvailable_WhenCheckPanics_ReturnsServiceUnavailable(t *testing.T) {
	router := createRouter(HealthCheck{Name: "cache", Check: func() error { panic("valkey client is not configured") }})

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/system/downdetect", "", http.StatusServiceUnavailable)

	assert.Contains(t, string(resp.Body), "cache check failed")
}
