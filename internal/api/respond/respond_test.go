package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()

	OK(w, "sent")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"result":"sent"}`, w.Body.String())
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()

	Created(w, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"result":{"n":1}}`, w.Body.String())
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()

	Fail(w, http.StatusNotFound, errors.New("notification not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"notification not found"}`, w.Body.String())
}
