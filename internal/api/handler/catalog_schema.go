package handler

type productImageRequest struct {
	URL          string `json:"image_url" validate:"required,url"`
	AltText      string `json:"alt_text"`
	DisplayOrder int    `json:"display_order"`
	IsPrimary    bool   `json:"is_primary"`
}

type productRequest struct {
	SKU              *string               `json:"sku"`
	Name             *string               `json:"name"`
	Slug             *string               `json:"slug"`
	Description      *string               `json:"description"`
	ShortDescription *string               `json:"short_description"`
	Category         *string               `json:"category"`
	Brand            *string               `json:"brand"`
	RetailPrice      *float64              `json:"retail_price"      validate:"omitempty,gte=0"`
	WholesalePrice   *float64              `json:"wholesale_price"   validate:"omitempty,gte=0"`
	MinWholesaleQty  *int                  `json:"min_wholesale_qty" validate:"omitempty,gte=0"`
	StockQuantity    *int                  `json:"stock_quantity"    validate:"omitempty,gte=0"`
	Tags             []string              `json:"tags"`
	Status           *string               `json:"status"            validate:"omitempty,oneof=draft published archived"`
	IsFeatured       *bool                 `json:"is_featured"`
	Images           []productImageRequest `json:"images"            validate:"dive"`
}

// wholesaleProductResponse is the catalog view shown in the wholesale area.
type wholesaleProductResponse struct {
	ID              string  `json:"id"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Category        string  `json:"category,omitempty"`
	Brand           string  `json:"brand,omitempty"`
	Image           string  `json:"image,omitempty"`
	RetailPrice     float64 `json:"retail_price"`
	WholesalePrice  float64 `json:"wholesale_price"`
	MinWholesaleQty int     `json:"min_wholesale_qty"`
	StockQuantity   int     `json:"stock_quantity"`
}
