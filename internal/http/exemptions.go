package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/companieshouse/company-exemptions-api/internal/metrics"
	"github.com/companieshouse/company-exemptions-api/internal/model"
	"github.com/companieshouse/company-exemptions-api/internal/util"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const deltaAtHeader = "X-Delta-At"

// ExemptionsService is the controller-facing contract of the core service.
type ExemptionsService interface {
	Upsert(ctx context.Context, contextID, companyNumber string, req model.InternalExemptionsRequest) error
	Get(ctx context.Context, companyNumber string) (*model.CompanyExemptions, error)
	Delete(ctx context.Context, contextID, companyNumber, requestDeltaAt string) error
}

// contextID returns the caller-supplied correlation id, minting one when the
// header is absent so downstream calls always carry something traceable.
func contextID(c echo.Context) string {
	id := strings.TrimSpace(c.Request().Header.Get("X-Request-Id"))
	if id == "" {
		id = util.NewContextID()
	}
	return id
}

func upsertExemptionsHandler(svc ExemptionsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyNumber := c.Param("company_number")

		var req model.InternalExemptionsRequest
		if err := c.Bind(&req); err != nil {
			metrics.RequestsTotal.WithLabelValues("upsert", "bad_request").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		if err := svc.Upsert(c.Request().Context(), contextID(c), companyNumber, req); err != nil {
			return writeError(c, "upsert", err)
		}

		metrics.RequestsTotal.WithLabelValues("upsert", "ok").Inc()
		return c.NoContent(http.StatusOK)
	}
}

func getExemptionsHandler(svc ExemptionsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyNumber := c.Param("company_number")

		data, err := svc.Get(c.Request().Context(), companyNumber)
		if err != nil {
			return writeError(c, "get", err)
		}

		metrics.RequestsTotal.WithLabelValues("get", "ok").Inc()
		return c.JSON(http.StatusOK, data)
	}
}

func deleteExemptionsHandler(svc ExemptionsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyNumber := c.Param("company_number")
		requestDeltaAt := c.Request().Header.Get(deltaAtHeader)

		if err := svc.Delete(c.Request().Context(), contextID(c), companyNumber, requestDeltaAt); err != nil {
			return writeError(c, "delete", err)
		}

		metrics.RequestsTotal.WithLabelValues("delete", "ok").Inc()
		return c.NoContent(http.StatusOK)
	}
}

// writeError translates the error taxonomy to status codes.
func writeError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, model.ErrBadRequest):
		metrics.RequestsTotal.WithLabelValues(op, "bad_request").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
	case errors.Is(err, model.ErrConflict):
		metrics.RequestsTotal.WithLabelValues(op, "conflict").Inc()
		return c.JSON(http.StatusConflict, map[string]string{"error": "stale delta"})
	case errors.Is(err, model.ErrNotFound):
		metrics.RequestsTotal.WithLabelValues(op, "not_found").Inc()
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, model.ErrServiceUnavailable):
		metrics.RequestsTotal.WithLabelValues(op, "unavailable").Inc()
		log.Errorf("%s failed: %v", op, err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "service unavailable"})
	default:
		metrics.RequestsTotal.WithLabelValues(op, "error").Inc()
		log.Errorf("%s failed: %v", op, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
