package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// ListPublished returns storefront-visible products only.
func (s *CatalogService) ListPublished(ctx context.Context, in ports.ListProductsInput) (*ports.ProductPage, error) {
	return s.list(ctx, in, domain.ProductPublished)
}

func (s *CatalogService) GetPublished(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished() {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// ListAll is the admin list; status filters when non-empty.
func (s *CatalogService) ListAll(ctx context.Context, in ports.ListProductsInput, status string) (*ports.ProductPage, error) {
	var st domain.ProductStatus
	if status != "" {
		parsed, err := parseProductStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.list(ctx, in, st)
}

func (s *CatalogService) list(ctx context.Context, in ports.ListProductsInput, status domain.ProductStatus) (*ports.ProductPage, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.repo.List(ctx, ports.ListProductsFilter{
		Status:   status,
		Category: strings.TrimSpace(in.Category),
		Search:   strings.TrimSpace(in.Search),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	return &ports.ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// CreateProduct derives the slug from the name when absent. New products
// default to draft.
func (s *CatalogService) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if in.SKU == nil || strings.TrimSpace(*in.SKU) == "" {
		return nil, domain.NewValidationError("sku", "is required")
	}
	if in.RetailPrice == nil {
		return nil, domain.NewValidationError("retail_price", "is required")
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:        uuid.NewString(),
		Status:    domain.ProductDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID).Str("slug", p.Slug).Msg("product created")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func applyProductInput(p *domain.Product, in ports.ProductInput) error {
	applyString(&p.SKU, in.SKU)
	applyString(&p.Name, in.Name)
	applyString(&p.Description, in.Description)
	applyString(&p.ShortDescription, in.ShortDescription)
	applyString(&p.Category, in.Category)
	applyString(&p.Brand, in.Brand)
	if in.Slug != nil {
		p.Slug = domain.Slugify(*in.Slug)
	}
	if in.RetailPrice != nil {
		if *in.RetailPrice < 0 {
			return domain.NewValidationError("retail_price", "must not be negative")
		}
		p.RetailPrice = *in.RetailPrice
	}
	if in.WholesalePrice != nil {
		if *in.WholesalePrice < 0 {
			return domain.NewValidationError("wholesale_price", "must not be negative")
		}
		p.WholesalePrice = *in.WholesalePrice
	}
	if in.MinWholesaleQty != nil {
		p.MinWholesaleQty = *in.MinWholesaleQty
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Status != nil {
		st, err := parseProductStatus(*in.Status)
		if err != nil {
			return err
		}
		p.Status = st
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	return nil
}

func parseProductStatus(s string) (domain.ProductStatus, error) {
	switch st := domain.ProductStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case domain.ProductDraft, domain.ProductPublished, domain.ProductArchived:
		return st, nil
	}
	return "", domain.NewValidationError("status", "must be one of: draft published archived")
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
