//go:build integration

package integration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersOnResponses(t *testing.T) {
	t.Parallel()

	server := newServer(t, testConfig())

	resp, err := http.Get(server.URL + "/api/v1/view")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	require.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRateLimitReturns429(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimitRPM = 2
	server := newServer(t, cfg)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL + "/api/v1/storage")
		require.NoError(t, err)
		_ = resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadOverLimitReturns413(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxUploadSize = 1024
	server := newServer(t, cfg)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "big.bin")
	require.NoError(t, err)
	_, err = part.Write(make([]byte, 4096))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/api/v1/entries/upload", writer.FormDataContentType(), body)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
