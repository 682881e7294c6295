package handler

import "github.com/alzia/storefront/internal/core/domain"

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Redirect string `json:"redirect"`
}

type authResponse struct {
	Token      string           `json:"token,omitempty"`
	RedirectTo string           `json:"redirect_to,omitempty"`
	Customer   *domain.Customer `json:"customer,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
