package model

import (
	"strings"
	"time"
)

const (
	// StorageCapacityBytes is the fixed quota the usage gauge is measured against.
	StorageCapacityBytes int64 = 15 * 1024 * 1024 * 1024

	// PreviewMaxBytes bounds which images get an inline preview.
	PreviewMaxBytes int64 = 5 * 1024 * 1024

	// RecentWindow is how far back the recent section looks.
	RecentWindow = 7 * 24 * time.Hour
)

type Category string

const (
	CategoryImage        Category = "image"
	CategoryDocument     Category = "document"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryPresentation Category = "presentation"
	CategoryVideo        Category = "video"
	CategoryAudio        Category = "audio"
	CategoryArchive      Category = "archive"
	CategoryCode         Category = "code"
	CategoryFolder       Category = "folder"
	CategoryOther        Category = "other"
)

// Entry is a file or folder record held by the store.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	IsDeleted bool      `json:"is_deleted"`
	IsFolder  bool      `json:"is_folder"`
	Preview   *Preview  `json:"-"`
}

// Preview is the in-memory content kept for small images.
type Preview struct {
	MIMEType  string
	Data      []byte
	Thumbnail []byte
}

func (e Entry) HasPreview() bool {
	return e.Preview != nil && len(e.Preview.Data) > 0
}

// SplitName returns the base and extension (including the dot) of an entry
// name. Folders and names without a dot have no extension.
func SplitName(name string, isFolder bool) (string, string) {
	if isFolder {
		return name, ""
	}

	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}

	return name[:idx], name[idx:]
}
