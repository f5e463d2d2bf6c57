package util

import (
	"strings"

	"go-file-manager/internal/model"
)

type categorySpec struct {
	category   model.Category
	extensions []string
	glyph      string
}

// categoryTable is scanned in order; the first category listing an extension wins.
var categoryTable = []categorySpec{
	{model.CategoryImage, []string{"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp"}, "🖼️"},
	{model.CategoryDocument, []string{"pdf", "doc", "docx", "txt", "rtf"}, "📄"},
	{model.CategorySpreadsheet, []string{"xls", "xlsx", "csv"}, "📊"},
	{model.CategoryPresentation, []string{"ppt", "pptx"}, "📽️"},
	{model.CategoryVideo, []string{"mp4", "avi", "mov", "wmv", "flv", "webm"}, "🎬"},
	{model.CategoryAudio, []string{"mp3", "wav", "ogg", "m4a", "flac"}, "🎵"},
	{model.CategoryArchive, []string{"zip", "rar", "7z", "tar", "gz"}, "📦"},
	{model.CategoryCode, []string{"html", "css", "js", "json", "xml", "py", "java", "cpp"}, "💻"},
	{model.CategoryFolder, nil, "📁"},
	{model.CategoryOther, nil, "📎"},
}

const defaultGlyph = "📎"

var (
	categoryByExtension = buildExtensionIndex()
	glyphByCategory     = buildGlyphIndex()
)

func buildExtensionIndex() map[string]model.Category {
	index := make(map[string]model.Category)
	for _, spec := range categoryTable {
		for _, ext := range spec.extensions {
			if _, exists := index[ext]; exists {
				continue
			}
			index[ext] = spec.category
		}
	}
	return index
}

func buildGlyphIndex() map[model.Category]string {
	index := make(map[model.Category]string, len(categoryTable))
	for _, spec := range categoryTable {
		index[spec.category] = spec.glyph
	}
	return index
}

// Extension returns the lower-cased text after the last dot, or "" when the
// name has none.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(name[idx+1:]))
}

func CategoryOf(name string) model.Category {
	ext := Extension(name)
	if ext == "" {
		return model.CategoryOther
	}

	if category, ok := categoryByExtension[ext]; ok {
		return category
	}

	return model.CategoryOther
}

func Glyph(category model.Category) string {
	if glyph, ok := glyphByCategory[category]; ok {
		return glyph
	}
	return defaultGlyph
}
