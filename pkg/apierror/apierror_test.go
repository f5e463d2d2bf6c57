package apierror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BAD_REQUEST: invalid JSON body", BadRequest("invalid JSON body", "").Error())
	assert.Equal(t, "INVALID_FILENAME: bad name (a/b)", InvalidFilename("bad name", "a/b").Error())

	var nilErr *APIError
	assert.Empty(t, nilErr.Error())
}

func TestConstructorsSetStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, BadRequest("x", "").HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, InvalidFilename("x", "").HTTPStatus)
	assert.Equal(t, http.StatusForbidden, PathTraversal("x", "").HTTPStatus)
}

func TestHasCode(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("rename: %w", InvalidFilename("bad", "a/b"))
	assert.True(t, HasCode(wrapped, CodeInvalidFilename))
	assert.False(t, HasCode(wrapped, CodeBadRequest))
	assert.False(t, HasCode(fmt.Errorf("plain"), CodeBadRequest))
}
