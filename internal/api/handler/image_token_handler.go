package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/api/metrics"
	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const imageTokenPath = "/api/tryon-image"

type ImageTokenHandler struct {
	tokens ports.ImageTokenService
}

func NewImageTokenHandler(tokens ports.ImageTokenService) *ImageTokenHandler {
	return &ImageTokenHandler{tokens: tokens}
}

// Issue handles POST /api/tryon-image.
//
// @Summary      Issue a one-time image link
// @Tags         tryon
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      issueImageTokenRequest  true  "Source image and lifetime"
// @Success      200   {object}  imageTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tryon-image [post]
func (h *ImageTokenHandler) Issue(c echo.Context) error {
	var req issueImageTokenRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	issued, err := h.tokens.Issue(c.Request().Context(), req.ImageURL, req.ExpiresInMinutes)
	if err != nil {
		return err
	}
	metrics.ImageTokensIssuedTotal.Inc()

	return c.JSON(http.StatusOK, imageTokenResponse{
		Token:     issued.Token,
		URL:       imageTokenPath + "?" + url.Values{"token": {issued.Token}}.Encode(),
		ExpiresAt: issued.ExpiresAt.UTC(),
		ExpiresIn: fmt.Sprintf("%d minutes", int(issued.ExpiresIn.Minutes())),
	})
}

// Redeem handles GET /api/tryon-image?token=.
//
// @Summary      Download an image through a one-time link
// @Tags         tryon
// @Produce      png
// @Param        token  query     string  true  "Token returned by the issue endpoint"
// @Success      200    {file}    binary
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/tryon-image [get]
func (h *ImageTokenHandler) Redeem(c echo.Context) error {
	img, _, err := h.tokens.Redeem(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		metrics.ImageTokensRedeemedTotal.WithLabelValues(redeemResult(err)).Inc()
		return err
	}
	metrics.ImageTokensRedeemedTotal.WithLabelValues("ok").Inc()

	hdr := c.Response().Header()
	hdr.Set("Cache-Control", "no-store, no-cache, must-revalidate")
	hdr.Set("Content-Disposition", `inline; filename="virtual-tryon-result.png"`)
	hdr.Set("X-Robots-Tag", "noindex")
	return c.Blob(http.StatusOK, "image/png", img.Data)
}

func redeemResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenUsed):
		return "used"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid"
	default:
		return "error"
	}
}
