package domain

import (
	"strings"
	"time"
)

// Role drives the access gate. It is assigned outside the app and trusted as read.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleWholesaler Role = "wholesaler"
	RoleNormal     Role = "normal"
)

// ParseRole normalises a stored role string. Unknown values return ok=false.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleWholesaler, RoleNormal:
		return r, true
	}
	return "", false
}

// CustomerStatus is the account state checked on every gated request.
type CustomerStatus string

const (
	StatusActive   CustomerStatus = "active"
	StatusBlocked  CustomerStatus = "blocked"
	StatusInactive CustomerStatus = "inactive"
)

type CustomerType string

const (
	CustomerRetail    CustomerType = "retail"
	CustomerWholesale CustomerType = "wholesale"
)

// Customer is the identity record behind a session.
type Customer struct {
	ID               string         `json:"id" bson:"_id"`
	Email            string         `json:"email" bson:"email"`
	PasswordHash     string         `json:"-" bson:"password_hash"`
	FirstName        string         `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName         string         `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Phone            string         `json:"phone,omitempty" bson:"phone,omitempty"`
	Role             Role           `json:"role" bson:"role"`
	Status           CustomerStatus `json:"status" bson:"status"`
	CustomerType     CustomerType   `json:"customer_type" bson:"customer_type"`
	TotalSpent       float64        `json:"total_spent" bson:"total_spent"`
	OrderCount       int            `json:"order_count" bson:"order_count"`
	TryOnCredits     int            `json:"tryon_credits" bson:"tryon_credits"`
	TryOnCreditsUsed int            `json:"tryon_credits_used" bson:"tryon_credits_used"`
	LastTryOnAt      *time.Time     `json:"last_tryon_at,omitempty" bson:"last_tryon_at,omitempty"`
	DefaultAddressID string         `json:"default_address_id,omitempty" bson:"default_address_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at"`
}

// FullName joins first and last name, skipping empty parts.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsActive reports whether the account may use gated pages and APIs.
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// CreditBalance is the try-on credit ledger view of a customer.
type CreditBalance struct {
	Credits     int        `json:"credits"`
	CreditsUsed int        `json:"credits_used"`
	LastTryOnAt *time.Time `json:"last_tryon_at"`
}

// Balance extracts the credit ledger from the customer record.
func (c *Customer) Balance() CreditBalance {
	credits := c.TryOnCredits
	if credits < 0 {
		credits = 0
	}
	return CreditBalance{
		Credits:     credits,
		CreditsUsed: c.TryOnCreditsUsed,
		LastTryOnAt: c.LastTryOnAt,
	}
}
