package configcmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/cvgen/internal/config"
)

func testConfig(serverURL string) *config.Config {
	cfg := config.Default()
	cfg.GitHub.APIBase = serverURL
	cfg.GitHub.Username = "octocat"
	cfg.GitHub.Token = "test-token"
	return cfg
}

func TestRunTest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"total_count": 1, "items": [{"number": 1, "title": "Fix it", "repository_url": "https://api.github.com/repos/o/r"}]}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runTest(context.Background(), &out, testConfig(server.URL), true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ API access verified")
	assert.Contains(t, out.String(), "Latest merged PR: Fix it (o/r)")
}

func TestRunTest_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_count": 0, "items": []}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runTest(context.Background(), &out, testConfig(server.URL), true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No merged pull requests found for octocat")
}

func TestRunTest_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication failed"},
		{"forbidden", http.StatusForbidden, "access denied"},
		{"server error", http.StatusInternalServerError, "unexpected status code: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message": "nope"}`))
			}))
			defer server.Close()

			var out bytes.Buffer
			err := runTest(context.Background(), &out, testConfig(server.URL), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunTest_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var out bytes.Buffer
	err := runTest(context.Background(), &out, testConfig(url), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection failed")
}

func TestRunTest_PlaceholderUsername(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")
	cfg.GitHub.Username = config.PlaceholderUsername

	err := runTest(context.Background(), &bytes.Buffer{}, cfg, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github.username is not set")
}
