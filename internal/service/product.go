package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type ProductService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics
}

func (s *ProductService) List(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prod, nil
}

// CanCreate reports whether principal may list new products.
func (s *ProductService) CanCreate(principal *models.Account) error {
	if !IsAuthenticated(principal) {
		return ErrUnauthenticated
	}
	if !IsSeller(principal) {
		s.Metrics.Denied("product.create")
		return ErrForbidden
	}
	return nil
}

// Create stores a product owned by principal. is_active defaults to true.
func (s *ProductService) Create(ctx context.Context, principal *models.Account, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	if err := s.CanCreate(principal); err != nil {
		return nil, err
	}

	verr := ValidationError{}
	if strings.TrimSpace(req.Description) == "" {
		verr.Add("description", MsgRequired)
	}
	if req.Price == nil {
		verr.Add("price", MsgRequired)
	} else if *req.Price < 0 {
		verr.Add("price", MsgNegativeValue)
	}
	if req.Quantity == nil {
		verr.Add("quantity", MsgRequired)
	} else if *req.Quantity < 0 {
		verr.Add("quantity", MsgNegativeValue)
	}
	if len(verr) > 0 {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", verr)
		return nil, verr
	}

	prod, err := s.Repo.CreateProduct(ctx, &models.Product{
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		IsActive:    req.IsActive == nil || *req.IsActive,
		SellerID:    principal.ID,
	})
	if err != nil {
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return nil, err
	}

	s.Metrics.ProductCreated()
	publish(ctx, s.Events, events.TopicProducts, prod.ID.String(), events.TypeProductCreated, map[string]any{
		"product_id": prod.ID.String(),
		"seller_id":  prod.SellerID,
		"price":      prod.Price,
		"quantity":   prod.Quantity,
	})
	return prod, nil
}

// Editable loads product id and checks that principal is its seller. The
// lookup runs first, so an unknown id is reported before missing
// credentials.
func (s *ProductService) Editable(ctx context.Context, principal *models.Account, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsAuthenticated(principal) {
		return nil, ErrUnauthenticated
	}
	if !IsProductOwner(principal, prod) {
		s.Metrics.Denied("product.update")
		return nil, ErrForbidden
	}
	return prod, nil
}

// Patch applies a partial update. The seller never changes.
func (s *ProductService) Patch(ctx context.Context, prod *models.Product, req transport.PatchProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.patch", "product_id", prod.ID.String())

	verr := ValidationError{}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		verr.Add("description", MsgBlank)
	}
	if req.Price != nil && *req.Price < 0 {
		verr.Add("price", MsgNegativeValue)
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		verr.Add("quantity", MsgNegativeValue)
	}
	if len(verr) > 0 {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", verr)
		return nil, verr
	}

	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Quantity != nil {
		prod.Quantity = *req.Quantity
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		l.Error("product_patch_error", "status", 500, "reason", "cannot save product", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicProducts, prod.ID.String(), events.TypeProductUpdated, map[string]any{
		"product_id": prod.ID.String(),
		"seller_id":  prod.SellerID,
		"price":      prod.Price,
		"quantity":   prod.Quantity,
		"is_active":  prod.IsActive,
	})
	return prod, nil
}
