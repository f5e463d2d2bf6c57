package util

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-file-manager/internal/model"
)

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	cases := map[string]model.Category{
		"photo.jpg":         model.CategoryImage,
		"PHOTO.JPEG":        model.CategoryImage,
		"diagram.svg":       model.CategoryImage,
		"report.final.docx": model.CategoryDocument,
		"budget.csv":        model.CategorySpreadsheet,
		"deck.PPTX":         model.CategoryPresentation,
		"movie.mp4":         model.CategoryVideo,
		"song.flac":         model.CategoryAudio,
		"backup.tar.gz":     model.CategoryArchive,
		"main.cpp":          model.CategoryCode,
		"Makefile":          model.CategoryOther,
		"notes.unknownext":  model.CategoryOther,
		"trailing.":         model.CategoryOther,
		"":                  model.CategoryOther,
	}

	for name, expected := range cases {
		require.Equal(t, expected, CategoryOf(name), name)
	}
}

func TestGlyph(t *testing.T) {
	t.Parallel()

	require.Equal(t, "📁", Glyph(model.CategoryFolder))
	require.Equal(t, "🎬", Glyph(model.CategoryVideo))
	require.Equal(t, "📎", Glyph(model.CategoryOther))
	require.Equal(t, "📎", Glyph(model.Category("hologram")))
}

func TestExtension(t *testing.T) {
	t.Parallel()

	require.Equal(t, "txt", Extension("a.b.TXT"))
	require.Equal(t, "", Extension("README"))
	require.Equal(t, "bashrc", Extension(".bashrc"))
}
