package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectImageMIME(t *testing.T) {
	t.Parallel()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.Equal(t, "image/png", DetectImageMIME("photo.png", png))

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	require.Equal(t, "image/svg+xml", DetectImageMIME("icon.svg", svg))

	require.Equal(t, "text/plain; charset=utf-8", DetectImageMIME("noext", []byte("hello")))
}

func TestIsThumbnailMIME(t *testing.T) {
	t.Parallel()

	require.True(t, IsThumbnailMIME("image/jpeg"))
	require.True(t, IsThumbnailMIME(" image/WEBP "))
	require.False(t, IsThumbnailMIME("image/svg+xml"))
	require.False(t, IsThumbnailMIME("text/plain"))
}
