package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://api.github.com/", "token123", 5*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "https://api.github.com", client.baseURL)
	assert.Equal(t, "token123", client.token)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "", 0)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestClient_Headers(t *testing.T) {
	var capturedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "mytoken", time.Second)
	_, err := client.Get(context.Background(), "/test")
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.github+json", capturedHeaders.Get("Accept"))
	assert.Equal(t, "cvgen/dev", capturedHeaders.Get("User-Agent"))
	assert.Equal(t, "Bearer mytoken", capturedHeaders.Get("Authorization"))
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var capturedAuth string
	var sawAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	_, err := client.Get(context.Background(), "/test")
	require.NoError(t, err)

	assert.Empty(t, capturedAuth)
	assert.False(t, sawAuth)
}

func TestClient_ErrorResponse(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		responseBody   string
		expectedErrMsg string
		expectedDocURL string
	}{
		{
			name:           "401 bad credentials",
			statusCode:     401,
			responseBody:   `{"message": "Bad credentials", "documentation_url": "https://docs.github.com/rest"}`,
			expectedErrMsg: "Bad credentials (status 401)",
			expectedDocURL: "https://docs.github.com/rest",
		},
		{
			name:           "403 rate limited",
			statusCode:     403,
			responseBody:   `{"message": "API rate limit exceeded"}`,
			expectedErrMsg: "API rate limit exceeded",
		},
		{
			name:           "422 validation failed",
			statusCode:     422,
			responseBody:   `{"message": "Validation Failed"}`,
			expectedErrMsg: "Validation Failed",
		},
		{
			name:           "500 non-JSON body",
			statusCode:     500,
			responseBody:   "upstream exploded",
			expectedErrMsg: "upstream exploded (status 500)",
		},
		{
			name:           "502 empty body",
			statusCode:     502,
			responseBody:   "",
			expectedErrMsg: "API error (status 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClient(server.URL, "", time.Second)
			_, err := client.Get(context.Background(), "/test")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)

			var apiErr *ErrorResponse
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.expectedDocURL, apiErr.DocumentationURL)
		})
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Slow response
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := client.Get(ctx, "/test")
	require.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "", 50*time.Millisecond)

	start := time.Now()
	_, err := client.Get(context.Background(), "/slow")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_URLConstruction(t *testing.T) {
	var capturedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "", time.Second)

	tests := []struct {
		inputPath    string
		expectedPath string
	}{
		{"/search/issues", "/search/issues"},
		{"search/issues", "/search/issues"},
	}

	for _, tt := range tests {
		_, err := client.Get(context.Background(), tt.inputPath)
		require.NoError(t, err)
		assert.Equal(t, tt.expectedPath, capturedPath)
	}
}
