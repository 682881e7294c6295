package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      SessionCookie
}

func NewAuthHandler(authService ports.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new storefront customer.
//
// @Summary      Register a new customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	customer, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Customer: customer})
}

// Login authenticates a customer, sets the session cookie and returns the
// page the client should land on.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, customer, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.cookie.TTL))
	role, _ := domain.ParseRole(string(customer.Role))
	return c.JSON(http.StatusOK, authResponse{
		Token:      token,
		RedirectTo: domain.LandingPath(role, req.Redirect),
		Customer:   customer,
	})
}

// Logout expires the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	} else {
		ck.MaxAge = int(ttl.Seconds())
		ck.Expires = time.Now().Add(ttl)
	}
	return ck
}

type loginPromptResponse struct {
	Message  string `json:"message"`
	Login    string `json:"login"`
	Redirect string `json:"redirect,omitempty"`
}

// LoginPrompt handles GET /auth/login, where the access gate sends
// unauthenticated callers. It tells the client where to post credentials.
//
// @Summary      Login required
// @Tags         auth
// @Produce      json
// @Param        redirect  query     string  false  "Path to return to after login"
// @Success      200       {object}  loginPromptResponse
// @Router       /auth/login [get]
func (h *AuthHandler) LoginPrompt(c echo.Context) error {
	return c.JSON(http.StatusOK, loginPromptResponse{
		Message:  "login required",
		Login:    domain.LoginPath,
		Redirect: c.QueryParam(domain.RedirectParam),
	})
}

// Unauthorized handles GET /unauthorized, where the access gate sends
// accounts that are unknown, blocked or inactive.
//
// @Summary      Access denied
// @Tags         auth
// @Produce      json
// @Success      403  {object}  errorResponse
// @Router       /unauthorized [get]
func (h *AuthHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "your account cannot access this area"})
}
