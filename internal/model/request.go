package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxNameLength bounds entry names in runes.
const MaxNameLength = 255

var noSeparators = validation.Match(regexp.MustCompile(`^[^/\\]*$`)).Error("must not contain path separators")

// CreateFolderRequest allows a blank name; creating a folder without one is a
// no-op rather than an error.
type CreateFolderRequest struct {
	Name string `json:"name"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.RuneLength(0, MaxNameLength), noSeparators),
	)
}

// RenameRequest carries the new base name; the extension is kept.
type RenameRequest struct {
	Name string `json:"name"`
}

func (r RenameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.RuneLength(0, MaxNameLength), noSeparators),
	)
}

type UploadFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type UploadItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Size     int64    `json:"size"`
	Category Category `json:"category"`
	Pending  bool     `json:"pending"`
}

type UploadResponse struct {
	Uploaded []UploadItem    `json:"uploaded"`
	Failed   []UploadFailure `json:"failed"`
}

type MutationResponse struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Entry   *Entry `json:"entry,omitempty"`
}

type DownloadResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Simulated bool   `json:"simulated"`
	Message   string `json:"message"`
}
