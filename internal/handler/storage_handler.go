package handler

import (
	"net/http"

	"go-file-manager/internal/service"
)

type StorageHandler struct {
	service *service.EntryService
}

func NewStorageHandler(service *service.EntryService) *StorageHandler {
	return &StorageHandler{service: service}
}

// Usage reports the storage gauge: bytes held outside the trash against the
// fixed capacity.
func (h *StorageHandler) Usage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.service.Usage(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, usage, nil)
}
