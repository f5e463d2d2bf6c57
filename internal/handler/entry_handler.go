package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/pkg/apierror"
)

type EntryHandler struct {
	service       *service.EntryService
	maxUploadSize int64
}

func NewEntryHandler(service *service.EntryService, maxUploadSize int64) *EntryHandler {
	return &EntryHandler{service: service, maxUploadSize: maxUploadSize}
}

// Upload accepts any number of "files" parts. Images that get a preview are
// reported pending until their preview is built. Parts are committed as they
// are read, so a body that overruns the limit still reports what was stored.
func (h *EntryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	reader, err := r.MultipartReader()
	if err != nil {
		writeError(w, apierror.BadRequest("invalid multipart body", ""))
		return
	}

	result := model.UploadResponse{Uploaded: []model.UploadItem{}, Failed: []model.UploadFailure{}}

	for {
		part, nextErr := reader.NextPart()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			if isPayloadTooLarge(nextErr) {
				h.writeTooLarge(w, result, "")
				return
			}
			writeErrorWithData(w, apierror.BadRequest("invalid multipart stream", nextErr.Error()), result)
			return
		}

		name := part.FileName()
		if part.FormName() != "files" || strings.TrimSpace(name) == "" {
			_ = part.Close()
			continue
		}

		src, readErr := service.ReadUpload(name, part)
		_ = part.Close()
		if readErr != nil {
			if isPayloadTooLarge(readErr) {
				h.writeTooLarge(w, result, name)
				return
			}
			result.Failed = append(result.Failed, model.UploadFailure{Name: name, Reason: readErr.Error()})
			continue
		}

		uploaded, uploadErr := h.service.Upload(r.Context(), src)
		if uploadErr != nil {
			result.Failed = append(result.Failed, model.UploadFailure{Name: name, Reason: uploadErr.Error()})
			continue
		}

		result.Uploaded = append(result.Uploaded, uploaded)
	}

	writeSuccess(w, http.StatusOK, result, &model.Meta{Total: len(result.Uploaded)})
}

// writeTooLarge answers 413 with the parts stored before the limit was hit.
// name is the part that overran it, empty when the overrun came between parts.
func (h *EntryHandler) writeTooLarge(w http.ResponseWriter, result model.UploadResponse, name string) {
	err := apierror.New(apierror.CodePayloadTooLarge, "request body exceeds MAX_UPLOAD_SIZE", "MAX_UPLOAD_SIZE", http.StatusRequestEntityTooLarge)
	result.Failed = append(result.Failed, model.UploadFailure{Name: name, Reason: err.Message})
	writeErrorWithData(w, err, result)
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "request body too large")
}

func (h *EntryHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateFolderRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	folder, created, err := h.service.CreateFolder(r.Context(), payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	if !created {
		writeSuccess(w, http.StatusOK, model.MutationResponse{Changed: false}, nil)
		return
	}

	writeSuccess(w, http.StatusCreated, model.MutationResponse{ID: folder.ID, Changed: true, Entry: &folder}, nil)
}

func (h *EntryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload model.RenameRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, err)
		return
	}

	renamed, changed, err := h.service.Rename(r.Context(), id, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	response := model.MutationResponse{ID: id, Changed: changed}
	if changed {
		response.Entry = &renamed
	}
	writeSuccess(w, http.StatusOK, response, nil)
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	changed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MutationResponse{ID: id, Changed: changed}, nil)
}

func (h *EntryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	changed, err := h.service.Restore(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MutationResponse{ID: id, Changed: changed}, nil)
}

// Purge permanently removes an entry. The caller confirms with
// ?confirm=true; without it nothing changes.
func (h *EntryHandler) Purge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	result, err := h.service.Purge(r.Context(), id, service.Answer(confirmed))
	if err != nil {
		writeError(w, err)
		return
	}

	if !result.Confirmed {
		writeError(w, model.ErrConfirmationRequired)
		return
	}

	writeSuccess(w, http.StatusOK, model.MutationResponse{ID: id, Changed: result.Changed}, nil)
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if !found {
		writeError(w, model.ErrEntryNotFound)
		return
	}

	writeSuccess(w, http.StatusOK, entry, nil)
}

// Download streams the preview bytes when an entry has them. Entries without
// bytes get a simulated download message, unknown ids a 204.
func (h *EntryHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	download, found, err := h.service.Download(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if download.Preview == nil {
		writeSuccess(w, http.StatusOK, model.DownloadResponse{
			ID:        download.Entry.ID,
			Name:      download.Entry.Name,
			Simulated: true,
			Message:   download.Message,
		}, nil)
		return
	}

	disposition := "attachment"
	if inline, _ := strconv.ParseBool(r.URL.Query().Get("inline")); inline {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", download.Preview.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Preview.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": download.Entry.Name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(download.Preview.Data)
}

func (h *EntryHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	thumbnail, err := h.service.Thumbnail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if len(thumbnail) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Header().Set("Content-Length", strconv.Itoa(len(thumbnail)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(thumbnail)
}
