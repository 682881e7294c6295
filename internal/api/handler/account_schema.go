package handler

import (
	"time"

	"github.com/alzia/storefront/internal/core/domain"
)

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type addressRequest struct {
	FullName     string `json:"full_name"      validate:"required"`
	Phone        string `json:"phone"          validate:"required"`
	AddressLine1 string `json:"address_line_1" validate:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"           validate:"required"`
	State        string `json:"state"          validate:"required"`
	PinCode      string `json:"pin_code"       validate:"required"`
	Landmark     string `json:"landmark"`
	AddressType  string `json:"address_type"   validate:"omitempty,oneof=home office other"`
	IsDefault    bool   `json:"is_default"`
}

type addressPatchRequest struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PinCode      *string `json:"pin_code"`
	Landmark     *string `json:"landmark"`
	AddressType  *string `json:"address_type" validate:"omitempty,oneof=home office other"`
}

type accountSummaryResponse struct {
	Customer     *domain.Customer     `json:"customer"`
	Credits      domain.CreditBalance `json:"credits"`
	RecentOrders []*domain.Order      `json:"recent_orders"`
	Addresses    int                  `json:"addresses"`
	HomePath     string               `json:"home_path"`
}

type listResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type tryOnHistoryItem struct {
	JobID          string    `json:"job_id"`
	ResultImageURL string    `json:"result_image_url"`
	CombinedURL    string    `json:"combined_url"`
	GarmentURL     string    `json:"garment_url"`
	PersonURL      string    `json:"person_url"`
	ModelUsed      string    `json:"model_used"`
	CreatedAt      time.Time `json:"created_at"`
}
