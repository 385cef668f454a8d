package test_utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type RequestOptions struct {
	Method         string
	URL            string
	Body           any
	AuthToken      string
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
}

// MakeRequest sends a request through the router and fails the test when the
// status differs from ExpectedStatus. A string Body is sent as is, anything
// else is JSON encoded.
func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var bodyReader io.Reader
	switch body := options.Body.(type) {
	case nil:
	case string:
		bodyReader = bytes.NewBufferString(body)
	case []byte:
		bodyReader = bytes.NewBuffer(body)
	default:
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequest(options.Method, options.URL, bodyReader)
	require.NoError(t, err)

	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(
		t,
		options.ExpectedStatus,
		recorder.Code,
		"unexpected status for %s %s: %s",
		options.Method,
		options.URL,
		recorder.Body.String(),
	)

	return &TestResponse{
		StatusCode: recorder.Code,
		Body:       recorder.Body.Bytes(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
	response any,
) {
	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, response))
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	require.NoError(t, json.Unmarshal(resp.Body, response))
}
