package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusInternalServerError, "Failed to load products")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":500,"message":"Failed to load products"}`, w.Body.String())
}

func TestJSONWritesBareValue(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, []string{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationError(w, map[string]string{"email": "required"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"status":422,"message":"Validation failed","errors":{"email":"required"}}`, w.Body.String())
}
