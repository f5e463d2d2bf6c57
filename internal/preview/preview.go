package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"go-file-manager/internal/model"
	"go-file-manager/internal/util"
)

const defaultThumbnailSize = 256

// Generator turns the bytes of a small image into the preview kept on its entry.
type Generator struct {
	thumbnailSize int
}

func NewGenerator(thumbnailSize int) *Generator {
	if thumbnailSize <= 0 {
		thumbnailSize = defaultThumbnailSize
	}
	return &Generator{thumbnailSize: thumbnailSize}
}

// Build always returns a preview for non-empty data. The thumbnail is left
// empty when the format has no decoder or the bytes do not decode; the
// returned error reports why.
func (g *Generator) Build(name string, data []byte) (*model.Preview, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty preview content for %q", name)
	}

	preview := &model.Preview{
		MIMEType: util.DetectImageMIME(name, data),
		Data:     data,
	}

	if !util.IsThumbnailMIME(preview.MIMEType) {
		return preview, nil
	}

	thumbnail, err := g.thumbnail(data)
	if err != nil {
		return preview, fmt.Errorf("thumbnail for %q: %w", name, err)
	}
	preview.Thumbnail = thumbnail

	return preview, nil
}

func (g *Generator) thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	maxDim := max(width, height)
	scale := math.Min(float64(g.thumbnailSize)/float64(maxDim), 1)

	targetWidth := max(int(math.Round(float64(width)*scale)), 1)
	targetHeight := max(int(math.Round(float64(height)*scale)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
