package domain

import "time"

type AddressType string

const (
	AddressHome   AddressType = "home"
	AddressOffice AddressType = "office"
	AddressOther  AddressType = "other"
)

// Address belongs to exactly one customer. IsDefault is not stored on the
// address: it is derived from Customer.DefaultAddressID, which keeps at most
// one default per customer.
type Address struct {
	ID           string      `json:"id" bson:"_id"`
	CustomerID   string      `json:"customer_id" bson:"customer_id"`
	FullName     string      `json:"full_name" bson:"full_name"`
	Phone        string      `json:"phone" bson:"phone"`
	AddressLine1 string      `json:"address_line_1" bson:"address_line_1"`
	AddressLine2 string      `json:"address_line_2,omitempty" bson:"address_line_2,omitempty"`
	City         string      `json:"city" bson:"city"`
	State        string      `json:"state" bson:"state"`
	PinCode      string      `json:"pin_code" bson:"pin_code"`
	Landmark     string      `json:"landmark,omitempty" bson:"landmark,omitempty"`
	AddressType  AddressType `json:"address_type" bson:"address_type"`
	IsDefault    bool        `json:"is_default" bson:"-"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// MarkDefault sets IsDefault on each address from the owner's default id.
func MarkDefault(addresses []*Address, defaultID string) {
	for _, a := range addresses {
		a.IsDefault = defaultID != "" && a.ID == defaultID
	}
}
