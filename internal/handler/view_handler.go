package handler

import (
	"net/http"
	"strconv"

	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/internal/view"
)

const apiPrefix = "/api/v1"

type ViewHandler struct {
	service *service.EntryService
}

func NewViewHandler(service *service.EntryService) *ViewHandler {
	return &ViewHandler{service: service}
}

// Get renders the current section. Previews are linked by URL unless the
// caller asks for inline data URLs with ?inline=true.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := view.NewQuery(query.Get("section"), query.Get("q"), query.Get("sort"), query.Get("mode"))

	thumbnailURL := previewURL
	if inline, _ := strconv.ParseBool(query.Get("inline")); inline {
		thumbnailURL = nil
	}

	page, err := h.service.View(r.Context(), q, thumbnailURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, &model.Meta{
		Total:   len(page.Items),
		Section: string(page.Section),
		Sort:    string(page.Sort),
		Mode:    string(page.Mode),
	})
}

// previewURL points at the scaled thumbnail when one was built, and at the
// inline download otherwise (formats the decoder cannot scale, such as SVG).
func previewURL(entry model.Entry) string {
	if entry.Preview != nil && len(entry.Preview.Thumbnail) > 0 {
		return apiPrefix + "/entries/" + entry.ID + "/thumbnail"
	}
	return apiPrefix + "/entries/" + entry.ID + "/download?inline=true"
}
