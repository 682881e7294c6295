package handler

import "time"

type tryOnResponse struct {
	Success          bool   `json:"success"`
	JobID            string `json:"job_id"`
	ResultURL        string `json:"result_url"`
	CombinedURL      string `json:"combined_url"`
	GarmentURL       string `json:"garment_url"`
	PersonURL        string `json:"person_url"`
	MetadataURL      string `json:"metadata_url"`
	CreditsRemaining int    `json:"credits_remaining"`
}

type creditsResponse struct {
	Credits     int        `json:"credits"`
	CreditsUsed int        `json:"credits_used"`
	LastTryOnAt *time.Time `json:"last_tryon_at"`
	HasCredits  bool       `json:"has_credits"`
}

type issueImageTokenRequest struct {
	ImageURL         string `json:"image_url"          validate:"required,http_url"`
	ExpiresInMinutes int    `json:"expires_in_minutes" validate:"gte=0"`
}

type imageTokenResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn string    `json:"expires_in"`
}
