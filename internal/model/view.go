package model

import "strings"

type Section string

const (
	SectionAll    Section = "all"
	SectionRecent Section = "recent"
	SectionTrash  Section = "trash"
)

// ParseSection falls back to the all section for anything unknown.
func ParseSection(raw string) Section {
	switch Section(strings.ToLower(strings.TrimSpace(raw))) {
	case SectionRecent:
		return SectionRecent
	case SectionTrash:
		return SectionTrash
	default:
		return SectionAll
	}
}

func (s Section) Title() string {
	switch s {
	case SectionRecent:
		return "Recent Files"
	case SectionTrash:
		return "Trash"
	default:
		return "All Files"
	}
}

type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// SortKeys lists the keys in the order a sort selector cycles through them.
var SortKeys = []SortKey{SortByName, SortByDate, SortBySize}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(raw string) ViewMode {
	if ViewMode(strings.ToLower(strings.TrimSpace(raw))) == ViewList {
		return ViewList
	}
	return ViewGrid
}

type Action string

const (
	ActionDownload Action = "download"
	ActionRename   Action = "rename"
	ActionDelete   Action = "delete"
	ActionRestore  Action = "restore"
	ActionPurge    Action = "purge"
)
