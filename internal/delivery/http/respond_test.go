package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-tracker/internal/repository"
	"portfolio-tracker/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"missing parent", fmt.Errorf("%w: portfolio 7", repository.ErrReferentialIntegrity), http.StatusUnprocessableEntity},
		{"invalid parameter", fmt.Errorf("%w: threshold", service.ErrInvalidParameter), http.StatusBadRequest},
		{"insufficient data", fmt.Errorf("%w: 1 price point", service.ErrInsufficientData), http.StatusUnprocessableEntity},
		{"duplicate execution", service.ErrDuplicateExecution, http.StatusConflict},
		{"external service", service.ErrExternalService, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, writeError(c, tt.err))
			assert.Equal(t, tt.expected, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestParseID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, err := parseID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.SetParamValues("not-a-number")
	_, err = parseID(c)
	assert.Error(t, err)
}
