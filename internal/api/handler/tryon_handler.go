package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/api/metrics"
	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

type TryOnHandler struct {
	tryOn ports.TryOnService
}

func NewTryOnHandler(tryOn ports.TryOnService) *TryOnHandler {
	return &TryOnHandler{tryOn: tryOn}
}

// Generate handles POST /api/tryon.
//
// @Summary      Run a virtual try-on
// @Description  Spends one credit when, and only when, every step succeeds.
// @Tags         tryon
// @Accept       multipart/form-data
// @Produce      json
// @Security     SessionCookie
// @Param        garment  formData  file  true  "Garment image (max 10 MiB)"
// @Param        person   formData  file  true  "Person image (max 10 MiB)"
// @Success      200      {object}  tryOnResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      429      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /api/tryon [post]
func (h *TryOnHandler) Generate(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}

	garment, err := readImage(c, "garment")
	if err != nil {
		metrics.TryOnJobsTotal.WithLabelValues("invalid").Inc()
		return err
	}
	person, err := readImage(c, "person")
	if err != nil {
		metrics.TryOnJobsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	start := time.Now()
	out, err := h.tryOn.Generate(c.Request().Context(), ports.TryOnInput{
		CustomerID: id,
		Garment:    garment,
		Person:     person,
	})
	if err != nil {
		metrics.TryOnJobsTotal.WithLabelValues(tryOnResult(err)).Inc()
		return err
	}
	metrics.TryOnJobsTotal.WithLabelValues("success").Inc()
	metrics.TryOnDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, tryOnResponse{
		Success:          true,
		JobID:            out.JobID,
		ResultURL:        out.ResultURL,
		CombinedURL:      out.CombinedURL,
		GarmentURL:       out.GarmentURL,
		PersonURL:        out.PersonURL,
		MetadataURL:      out.MetadataURL,
		CreditsRemaining: out.CreditsRemaining,
	})
}

// Credits handles GET /api/tryon/credits.
//
// @Summary      Own try-on credit balance
// @Tags         tryon
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  creditsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/tryon/credits [get]
func (h *TryOnHandler) Credits(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	b, err := h.tryOn.Credits(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, creditsResponse{
		Credits:     b.Credits,
		CreditsUsed: b.CreditsUsed,
		LastTryOnAt: b.LastTryOnAt,
		HasCredits:  b.Credits > 0,
	})
}

// History handles GET /api/tryon/history.
//
// @Summary      Own try-on results, newest first
// @Tags         tryon
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  tryOnHistoryItem
// @Router       /api/tryon/history [get]
func (h *TryOnHandler) History(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	results, err := h.tryOn.History(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryItems(results))
}

// readImage loads one multipart image field, enforcing presence, size and type.
func readImage(c echo.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, domain.NewValidationError(field, "image is required")
	}
	if fh.Size > domain.MaxTryOnImageBytes {
		return nil, domain.NewValidationError(field, fmt.Sprintf("must be at most %d MB", domain.MaxTryOnImageBytes>>20))
	}

	data, err := readPart(fh)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError(field, "image is required")
	}
	if len(data) > domain.MaxTryOnImageBytes {
		return nil, domain.NewValidationError(field, fmt.Sprintf("must be at most %d MB", domain.MaxTryOnImageBytes>>20))
	}
	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return nil, domain.NewValidationError(field, "must be an image file")
	}
	return data, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, domain.MaxTryOnImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func tryOnResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNoCredits):
		return "no_credits"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}
