package domain

import "time"

const (
	DefaultImageTokenTTL = 10 * time.Minute
	ImageTokenBytes      = 32
)

// ImageToken grants a single download of ImageURL until ExpiresAt.
type ImageToken struct {
	Token     string    `json:"token"`
	ImageURL  string    `json:"image_url"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	Downloads int       `json:"downloads"`
}

// Check reports why the token cannot be redeemed at now, or nil.
func (t *ImageToken) Check(now time.Time) error {
	if t.Used {
		return ErrTokenUsed
	}
	if now.After(t.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}
