package http

import (
	"errors"
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/repository"
	"portfolio-tracker/internal/service"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors to HTTP status codes.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrReferentialIntegrity):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrDuplicateExecution):
		status = http.StatusConflict
	case errors.Is(err, service.ErrExternalService):
		status = http.StatusBadGateway
	}
	return c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
