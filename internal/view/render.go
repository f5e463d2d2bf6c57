package view

import (
	"encoding/base64"
	"time"

	"go-file-manager/internal/model"
	"go-file-manager/internal/util"
)

type Item struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  model.Category `json:"category"`
	Glyph     string         `json:"glyph"`
	IsFolder  bool           `json:"is_folder"`
	Size      int64          `json:"size"`
	SizeHuman string         `json:"size_human"`
	CreatedAt time.Time      `json:"created_at"`
	DateHuman string         `json:"date_human"`
	// Thumbnail is set only for entries with a preview; the glyph is shown otherwise.
	Thumbnail string         `json:"thumbnail,omitempty"`
	Actions   []model.Action `json:"actions"`
}

type Page struct {
	Title   string         `json:"title"`
	Section model.Section  `json:"section"`
	Mode    model.ViewMode `json:"mode"`
	Sort    model.SortKey  `json:"sort"`
	Search  string         `json:"search,omitempty"`
	Empty   bool           `json:"empty"`
	Items   []Item         `json:"items"`
	Usage   Usage          `json:"usage"`
}

type Options struct {
	Section model.Section
	Mode    model.ViewMode
	Now     time.Time
	// ThumbnailURL links previews instead of inlining them as data URLs.
	ThumbnailURL func(model.Entry) string
}

var (
	activeActions = []model.Action{model.ActionDownload, model.ActionRename, model.ActionDelete}
	trashActions  = []model.Action{model.ActionRestore, model.ActionPurge}
)

// Render projects already filtered and sorted entries into display items.
func Render(entries []model.Entry, opts Options) Page {
	page := Page{
		Title:   opts.Section.Title(),
		Section: opts.Section,
		Mode:    opts.Mode,
		Empty:   len(entries) == 0,
		Items:   make([]Item, 0, len(entries)),
	}

	actions := activeActions
	if opts.Section == model.SectionTrash {
		actions = trashActions
	}

	for _, entry := range entries {
		item := Item{
			ID:        entry.ID,
			Name:      entry.Name,
			Category:  entry.Category,
			Glyph:     util.Glyph(entry.Category),
			IsFolder:  entry.IsFolder,
			Size:      entry.Size,
			SizeHuman: FormatSize(entry.Size),
			CreatedAt: entry.CreatedAt,
			DateHuman: FormatRelative(entry.CreatedAt, opts.Now),
			Actions:   actions,
		}

		if entry.HasPreview() {
			if opts.ThumbnailURL != nil {
				item.Thumbnail = opts.ThumbnailURL(entry)
			} else {
				item.Thumbnail = DataURL(entry.Preview)
			}
		}

		page.Items = append(page.Items, item)
	}

	return page
}

// DataURL encodes preview bytes for inline display.
func DataURL(preview *model.Preview) string {
	if preview == nil {
		return ""
	}
	return "data:" + preview.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(preview.Data)
}
