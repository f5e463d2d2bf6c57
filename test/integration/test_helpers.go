//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-file-manager/internal/app"
	"go-file-manager/internal/config"
	"go-file-manager/internal/handler"
	"go-file-manager/internal/router"
	"go-file-manager/internal/websocket"
)

type testServer struct {
	*httptest.Server
	core *app.Core
}

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:          "8080",
		RequestTimeout:      10 * time.Second,
		MaxUploadSize:       32 * 1024 * 1024,
		CORSOrigins:         []string{"*"},
		RateLimitRPM:        1000,
		PreviewCacheEntries: 16,
		ThumbnailSize:       64,
	}
}

func newServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	core, err := app.NewCore(cfg)
	require.NoError(t, err)
	core.Start()

	hub := websocket.NewHub(core.Bus)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	server := httptest.NewServer(router.New(cfg, router.Handlers{
		Entry:   handler.NewEntryHandler(core.Service, cfg.MaxUploadSize),
		View:    handler.NewViewHandler(core.Service),
		Storage: handler.NewStorageHandler(core.Service),
	}, hub))

	t.Cleanup(func() {
		server.Close()
		hubCancel()
		core.Stop()
	})

	return &testServer{Server: server, core: core}
}

type apiResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total   int    `json:"total"`
		Section string `json:"section"`
	} `json:"meta"`
}

type uploadedItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Category string `json:"category"`
	Pending  bool   `json:"pending"`
}

type pageItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Glyph     string   `json:"glyph"`
	IsFolder  bool     `json:"is_folder"`
	Size      int64    `json:"size"`
	SizeHuman string   `json:"size_human"`
	Thumbnail string   `json:"thumbnail"`
	Actions   []string `json:"actions"`
}

type page struct {
	Title string     `json:"title"`
	Empty bool       `json:"empty"`
	Items []pageItem `json:"items"`
	Usage struct {
		UsedBytes int64   `json:"used_bytes"`
		Percent   float64 `json:"percent"`
		Text      string  `json:"text"`
	} `json:"usage"`
}

type mutation struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Entry   *struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Size     int64  `json:"size"`
		IsFolder bool   `json:"is_folder"`
	} `json:"entry"`
}

func doJSON[T any](t *testing.T, method string, url string, body any) (int, apiResponse[T]) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var out apiResponse[T]
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

// uploadFiles posts one multipart request and waits for pending previews.
func (s *testServer) uploadFiles(t *testing.T, files map[string][]byte) []uploadedItem {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/v1/entries/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out apiResponse[struct {
		Uploaded []uploadedItem `json:"uploaded"`
		Failed   []any          `json:"failed"`
	}]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Empty(t, out.Data.Failed)

	s.core.Service.Wait()
	return out.Data.Uploaded
}

func (s *testServer) view(t *testing.T, query string) page {
	t.Helper()

	status, resp := doJSON[page](t, http.MethodGet, s.URL+"/api/v1/view?"+query, nil)
	require.Equal(t, http.StatusOK, status)
	return resp.Data
}

// paddedPNG is a decodable PNG followed by filler so the upload has the
// requested size.
func paddedPNG(t *testing.T, size int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	if buf.Len() < size {
		buf.Write(make([]byte, size-buf.Len()))
	}
	return buf.Bytes()
}
