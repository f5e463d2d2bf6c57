package util

import (
	"mime"
	"net/http"
	"strings"
)

// DetectImageMIME sniffs the content type of preview bytes, falling back to
// the extension when sniffing only yields a generic type (SVG is text).
func DetectImageMIME(name string, data []byte) string {
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}

	detected := http.DetectContentType(data[:sniffLen])
	if IsImageMIME(detected) {
		return detected
	}

	ext := Extension(name)
	if ext != "" {
		if byExt := mime.TypeByExtension("." + ext); byExt != "" {
			return byExt
		}
	}

	return detected
}

func IsImageMIME(mimeType string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(mimeType))
	return strings.HasPrefix(cleaned, "image/")
}

// IsThumbnailMIME reports whether the raster decoders linked into the preview
// generator can read the type.
func IsThumbnailMIME(mimeType string) bool {
	base, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		base = strings.ToLower(strings.TrimSpace(mimeType))
	}

	switch base {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff":
		return true
	default:
		return false
	}
}
