package domain

import (
	"strings"
	"time"
	"unicode"
)

type ProductStatus string

const (
	ProductDraft     ProductStatus = "draft"
	ProductPublished ProductStatus = "published"
	ProductArchived  ProductStatus = "archived"
)

type ProductImage struct {
	URL          string `json:"image_url" bson:"image_url"`
	AltText      string `json:"alt_text,omitempty" bson:"alt_text,omitempty"`
	DisplayOrder int    `json:"display_order" bson:"display_order"`
	IsPrimary    bool   `json:"is_primary" bson:"is_primary"`
}

// Product is a catalog entry with retail and wholesale pricing.
type Product struct {
	ID               string         `json:"id" bson:"_id"`
	SKU              string         `json:"sku" bson:"sku"`
	Name             string         `json:"name" bson:"name"`
	Slug             string         `json:"slug" bson:"slug"`
	Description      string         `json:"description,omitempty" bson:"description,omitempty"`
	ShortDescription string         `json:"short_description,omitempty" bson:"short_description,omitempty"`
	Category         string         `json:"category,omitempty" bson:"category,omitempty"`
	Brand            string         `json:"brand,omitempty" bson:"brand,omitempty"`
	RetailPrice      float64        `json:"retail_price" bson:"retail_price"`
	WholesalePrice   float64        `json:"wholesale_price" bson:"wholesale_price"`
	MinWholesaleQty  int            `json:"min_wholesale_qty" bson:"min_wholesale_qty"`
	StockQuantity    int            `json:"stock_quantity" bson:"stock_quantity"`
	Tags             []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	Status           ProductStatus  `json:"status" bson:"status"`
	IsFeatured       bool           `json:"is_featured" bson:"is_featured"`
	Images           []ProductImage `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt        time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" bson:"updated_at"`
}

// PrimaryImage returns the primary image URL, falling back to the first one.
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// IsPublished reports whether the product is visible in the storefront.
func (p *Product) IsPublished() bool {
	return p.Status == ProductPublished
}

// Slugify lowercases name and joins alphanumeric runs with single dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
