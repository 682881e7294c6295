package handler

import (
	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

// --- Request → Service input ---

func toAddressInput(r addressRequest) ports.AddressInput {
	return ports.AddressInput{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		PinCode:      r.PinCode,
		Landmark:     r.Landmark,
		AddressType:  r.AddressType,
		IsDefault:    r.IsDefault,
	}
}

func toAddressPatch(r addressPatchRequest) ports.AddressPatch {
	return ports.AddressPatch{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		PinCode:      r.PinCode,
		Landmark:     r.Landmark,
		AddressType:  r.AddressType,
	}
}

func toCheckoutInput(r checkoutRequest, customerID string, role domain.Role) ports.CheckoutInput {
	items := make([]ports.CheckoutItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ports.CheckoutItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return ports.CheckoutInput{
		CustomerID:           customerID,
		Role:                 role,
		Items:                items,
		AddressID:            r.AddressID,
		PaymentMethod:        r.PaymentMethod,
		DeliveryInstructions: r.DeliveryInstructions,
	}
}

func toProductInput(r productRequest) ports.ProductInput {
	var images []domain.ProductImage
	if r.Images != nil {
		images = make([]domain.ProductImage, 0, len(r.Images))
		for _, img := range r.Images {
			images = append(images, domain.ProductImage{
				URL:          img.URL,
				AltText:      img.AltText,
				DisplayOrder: img.DisplayOrder,
				IsPrimary:    img.IsPrimary,
			})
		}
	}
	return ports.ProductInput{
		SKU:              r.SKU,
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		Brand:            r.Brand,
		RetailPrice:      r.RetailPrice,
		WholesalePrice:   r.WholesalePrice,
		MinWholesaleQty:  r.MinWholesaleQty,
		StockQuantity:    r.StockQuantity,
		Tags:             r.Tags,
		Status:           r.Status,
		IsFeatured:       r.IsFeatured,
		Images:           images,
	}
}

// --- Service result → HTTP response ---

func toSummaryResponse(s *ports.AccountSummary, role domain.Role) accountSummaryResponse {
	return accountSummaryResponse{
		Customer:     s.Customer,
		Credits:      s.Credits,
		RecentOrders: ordersOrEmpty(s.RecentOrders),
		Addresses:    s.Addresses,
		HomePath:     role.HomePath(),
	}
}

func ordersOrEmpty(orders []*domain.Order) []*domain.Order {
	if orders == nil {
		return []*domain.Order{}
	}
	return orders
}

func toOrderList(p *ports.OrderPage) listResponse[*domain.Order] {
	return listResponse[*domain.Order]{
		Items:      ordersOrEmpty(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toProductList(p *ports.ProductPage) listResponse[*domain.Product] {
	items := p.Items
	if items == nil {
		items = []*domain.Product{}
	}
	return listResponse[*domain.Product]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toCustomerList(p *ports.CustomerPage) listResponse[*domain.Customer] {
	items := p.Items
	if items == nil {
		items = []*domain.Customer{}
	}
	return listResponse[*domain.Customer]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toWholesaleList(p *ports.ProductPage) listResponse[wholesaleProductResponse] {
	items := make([]wholesaleProductResponse, 0, len(p.Items))
	for _, pr := range p.Items {
		items = append(items, wholesaleProductResponse{
			ID:              pr.ID,
			SKU:             pr.SKU,
			Name:            pr.Name,
			Slug:            pr.Slug,
			Category:        pr.Category,
			Brand:           pr.Brand,
			Image:           pr.PrimaryImage(),
			RetailPrice:     pr.RetailPrice,
			WholesalePrice:  pr.WholesalePrice,
			MinWholesaleQty: pr.MinWholesaleQty,
			StockQuantity:   pr.StockQuantity,
		})
	}
	return listResponse[wholesaleProductResponse]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toHistoryItems(results []*domain.TryOnResult) []tryOnHistoryItem {
	items := make([]tryOnHistoryItem, 0, len(results))
	for _, r := range results {
		items = append(items, tryOnHistoryItem{
			JobID:          r.JobID,
			ResultImageURL: r.ResultImageURL,
			CombinedURL:    r.CombinedURL,
			GarmentURL:     r.GarmentURL,
			PersonURL:      r.PersonURL,
			ModelUsed:      r.ModelUsed,
			CreatedAt:      r.CreatedAt,
		})
	}
	return items
}
