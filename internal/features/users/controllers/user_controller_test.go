package users_controllers

import (
	"net/http"
	"os"
	"testing"

	users_dto "importhub/internal/features/users/dto"
	users_enums "importhub/internal/features/users/enums"
	users_middleware "importhub/internal/features/users/middleware"
	users_services "importhub/internal/features/users/services"
	users_testing "importhub/internal/features/users/testing"
	test_utils "importhub/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	test_utils.SetupTestDatabase()
	os.Exit(m.Run())
}

func Test_SignInUser_WithValidCredentials_ReturnsToken(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUserWithPassword(users_enums.UserRoleMember, "testpassword123")

	signinRequest := users_dto.SignInRequestDTO{
		Email:    "  " + user.Email + " ",
		Password: "testpassword123",
	}

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		signinRequest,
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.Equal(t, user.UserID, response.UserID)
}

func Test_SignInUser_WithWrongPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUserWithPassword(users_enums.UserRoleMember, "testpassword123")

	signinRequest := users_dto.SignInRequestDTO{
		Email:    user.Email,
		Password: "wrongpassword",
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", signinRequest, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "password is incorrect")
}

func Test_SignInUser_WithNonExistentUser_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	signinRequest := users_dto.SignInRequestDTO{
		Email:    "nonexistent" + uuid.New().String() + "@example.com",
		Password: "testpassword123",
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/signin", "", signinRequest, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "does not exist")
}

func Test_SignInUser_WithInvalidJSON_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         "POST",
		URL:            "/api/v1/users/signin",
		Body:           "invalid json",
		ExpectedStatus: http.StatusBadRequest,
	})

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CheckAdminHasPassword_WhenAdminHasNoPassword_ReturnsFalse(t *testing.T) {
	router := createUserTestRouter()

	users_testing.RecreateInitialAdmin()

	var response users_dto.IsAdminHasPasswordResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/admin/has-password", "", http.StatusOK, &response)

	assert.False(t, response.HasPassword)
}

func Test_SetAdminPassword_WithValidPassword_AdminCanSignIn(t *testing.T) {
	router := createUserTestRouter()

	users_testing.RecreateInitialAdmin()

	request := users_dto.SetAdminPasswordRequestDTO{
		Password: "adminpassword123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/users/admin/set-password", "", request, http.StatusOK)

	var hasPasswordResponse users_dto.IsAdminHasPasswordResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/admin/has-password",
		"",
		http.StatusOK,
		&hasPasswordResponse,
	)
	assert.True(t, hasPasswordResponse.HasPassword)

	// second attempt is rejected
	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/admin/set-password", "", request, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "already set")

	var signinResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "admin", Password: "adminpassword123"},
		http.StatusOK,
		&signinResponse,
	)
	assert.NotEmpty(t, signinResponse.Token)
}

func Test_SetAdminPassword_WithInvalidPassword_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()

	testCases := []struct {
		name     string
		password string
	}{
		{
			name:     "short password",
			password: "short",
		},
		{
			name:     "empty password",
			password: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := users_dto.SetAdminPasswordRequestDTO{
				Password: tc.password,
			}

			test_utils.MakePostRequest(
				t,
				router,
				"/api/v1/users/admin/set-password",
				"",
				request,
				http.StatusBadRequest,
			)
		})
	}
}

func Test_GetCurrentUser_WithValidToken_ReturnsProfile(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleMember)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/me", "Bearer "+user.Token, http.StatusOK, &profile)

	assert.Equal(t, user.UserID, profile.ID)
	assert.Equal(t, user.Email, profile.Email)
	assert.True(t, profile.IsActive)
}

func Test_GetCurrentUser_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer invalid", http.StatusUnauthorized)
}

func Test_SignInUser_WithImportedAccount_ReturnsForbidden(t *testing.T) {
	router := createUserTestRouter()
	email := "imported-" + uuid.NewString()[:8] + "@test.com"

	created, err := users_services.GetUserService().CreateImportedUsers([]string{email})
	require.NoError(t, err)
	require.Len(t, created, 1)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "anything123"},
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "account was imported")
}

func Test_GetCurrentUser_WithBotToken_ReturnsForbidden(t *testing.T) {
	router := createUserTestRouter()

	bot, err := users_services.GetUserService().CreateBotUser("GitHub")
	require.NoError(t, err)

	token, err := users_services.GetUserService().GenerateAccessToken(bot)
	require.NoError(t, err)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer "+token.Token, http.StatusForbidden)
	assert.Contains(t, string(resp.Body), "Bot accounts")
}

func createUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := GetUserController()
	controller.SetSignInLimiter(rate.NewLimiter(rate.Inf, 0))

	v1 := router.Group("/api/v1")
	controller.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	controller.RegisterProtectedRoutes(protected)

	return router
}
