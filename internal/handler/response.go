package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"go-file-manager/internal/model"
	"go-file-manager/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorWithData(w, err, nil)
}

// writeErrorWithData reports err and still carries data, for requests that
// changed state before they failed.
func writeErrorWithData(w http.ResponseWriter, err error, data any) {
	status, body := classifyError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Data:    data,
		Error:   body,
	})
}

func classifyError(err error) (int, *model.APIError) {
	var apiErr *apierror.APIError
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &apiErr):
		return apiErr.HTTPStatus, &model.APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, &model.APIError{Code: apierror.CodeValidation, Message: "Request payload is invalid", Details: validationErrs.Error()}
	case errors.Is(err, model.ErrEntryNotFound):
		return http.StatusNotFound, &model.APIError{Code: apierror.CodeNotFound, Message: "Entry not found"}
	case errors.Is(err, model.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, &model.APIError{Code: apierror.CodeConfirmationRequired, Message: "Permanent deletion must be confirmed with confirm=true"}
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, &model.APIError{Code: apierror.CodeBadRequest, Message: "Invalid input", Details: err.Error()}
	case errors.Is(err, model.ErrLoopStopped):
		return http.StatusServiceUnavailable, &model.APIError{Code: apierror.CodeUnavailable, Message: "Store is shutting down"}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, &model.APIError{Code: apierror.CodeRequestTimeout, Message: "Request did not complete in time"}
	}

	slog.Error("unhandled error in writeError", "error", err.Error())
	return http.StatusInternalServerError, &model.APIError{Code: apierror.CodeInternal, Message: "Unexpected server error"}
}

func decodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apierror.BadRequest("invalid JSON body", "")
	}
	return nil
}
