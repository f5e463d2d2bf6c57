package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width int, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildScalesThumbnail(t *testing.T) {
	t.Parallel()

	data := encodePNG(t, 400, 200)
	preview, err := NewGenerator(100).Build("wide.png", data)
	require.NoError(t, err)

	require.Equal(t, "image/png", preview.MIMEType)
	require.Equal(t, data, preview.Data)
	require.NotEmpty(t, preview.Thumbnail)

	thumb, err := jpeg.Decode(bytes.NewReader(preview.Thumbnail))
	require.NoError(t, err)
	require.Equal(t, 100, thumb.Bounds().Dx())
	require.Equal(t, 50, thumb.Bounds().Dy())
}

func TestBuildDoesNotUpscale(t *testing.T) {
	t.Parallel()

	preview, err := NewGenerator(256).Build("tiny.png", encodePNG(t, 16, 8))
	require.NoError(t, err)

	thumb, err := jpeg.Decode(bytes.NewReader(preview.Thumbnail))
	require.NoError(t, err)
	require.Equal(t, 16, thumb.Bounds().Dx())
	require.Equal(t, 8, thumb.Bounds().Dy())
}

func TestBuildKeepsPreviewWithoutDecoder(t *testing.T) {
	t.Parallel()

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)
	preview, err := NewGenerator(0).Build("icon.svg", svg)
	require.NoError(t, err)
	require.Equal(t, "image/svg+xml", preview.MIMEType)
	require.Empty(t, preview.Thumbnail)
}

func TestBuildReportsUndecodableImage(t *testing.T) {
	t.Parallel()

	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), []byte("not really a png")...)
	preview, err := NewGenerator(0).Build("broken.png", corrupt)
	require.Error(t, err)
	require.NotNil(t, preview)
	require.Equal(t, corrupt, preview.Data)
	require.Empty(t, preview.Thumbnail)
}

func TestBuildRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	preview, err := NewGenerator(0).Build("empty.png", nil)
	require.Error(t, err)
	require.Nil(t, preview)
}
