package controllers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"stylistweb/services"
)

// BackendErrorJSON translates the backend adapter's error taxonomy to the
// page-facing JSON shape. Network kinds also go to Sentry.
func BackendErrorJSON(c echo.Context, err error) error {
	if be, ok := services.AsBackendError(err); ok {
		switch be.Kind {
		case services.ErrValidation:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": be.Message})
		case services.ErrNotFound:
			return c.JSON(http.StatusNotFound, map[string]string{"error": be.Message})
		case services.ErrForbidden:
			return c.JSON(http.StatusForbidden, map[string]string{"error": be.Message})
		}
	}
	sentry.CaptureException(err)
	return c.JSON(http.StatusBadGateway, map[string]string{"error": "Le serveur ne répond pas. Réessayez plus tard."})
}
