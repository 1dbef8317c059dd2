package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/apierror"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/model"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/notify"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages the product catalog: CRUD, stock adjustments and
// the derived low-stock view. Price changes leave a price history row and
// stock adjustments a movement row.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	// Update patches present fields only. Unknown id returns (nil, false, nil).
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, bool, error)
	// Delete removes the product. Past invoices keep their snapshotted lines.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
	// AdjustStock applies a signed delta and records a manual_adjustment
	// movement. A delta that would take stock negative is rejected.
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	Movements(ctx context.Context, productID uuid.UUID) ([]dto.StockMovementResponse, error)
	PriceHistory(ctx context.Context, productID uuid.UUID) ([]dto.PriceHistoryResponse, error)
}

type catalogService struct {
	repo         repository.ProductRepository
	movementRepo repository.StockMovementRepository
	priceRepo    repository.PriceHistoryRepository
	notifier     notify.Notifier
}

func NewCatalogService(
	repo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	priceRepo repository.PriceHistoryRepository,
	notifier notify.Notifier,
) CatalogService {
	return &catalogService{
		repo:         repo,
		movementRepo: movementRepo,
		priceRepo:    priceRepo,
		notifier:     notifier,
	}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, err := s.repo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, apierror.NewValidation(map[string]string{
			"sku": fmt.Sprintf("A product with SKU %q already exists", req.SKU),
		})
	}

	threshold := req.LowStockThreshold
	if threshold == 0 {
		threshold = 5
	}
	unit := req.Unit
	if unit == "" {
		unit = "Pcs"
	}

	now := time.Now()
	p := &model.Product{
		ID:                uuid.New(),
		Name:              req.Name,
		SKU:               req.SKU,
		HSN:               req.HSN,
		MRP:               req.MRP,
		SellingPrice:      req.SellingPrice,
		PurchasePrice:     req.PurchasePrice,
		Quantity:          req.Quantity,
		Unit:              unit,
		Category:          req.Category,
		LowStockThreshold: threshold,
		GSTRate:           req.GSTRate,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.notifier.Notify("product.created", "Product added",
		fmt.Sprintf("%s has been added to the catalog", p.Name))
	return productToResponse(p), nil
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, bool, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Unknown id is a silent no-op.
		return nil, false, nil
	}

	if req.SKU != nil && *req.SKU != p.SKU {
		if existing, err := s.repo.FindBySKU(ctx, *req.SKU); err == nil && existing != nil && existing.ID != p.ID {
			return nil, true, apierror.NewValidation(map[string]string{
				"sku": fmt.Sprintf("A product with SKU %q already exists", *req.SKU),
			})
		}
	}

	sellingBefore := p.SellingPrice
	purchaseBefore := p.PurchasePrice

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.HSN != nil {
		p.HSN = *req.HSN
	}
	if req.MRP != nil {
		p.MRP = *req.MRP
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = *req.PurchasePrice
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}
	if req.GSTRate != nil {
		p.GSTRate = *req.GSTRate
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}

	// Every accepted update refreshes the timestamp, even when the patched
	// values equal the old ones.
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, true, err
	}

	priceChanged := !p.SellingPrice.Equal(sellingBefore) || !p.PurchasePrice.Equal(purchaseBefore)
	if priceChanged {
		h := &model.PriceHistory{
			ProductID:      p.ID,
			SellingBefore:  sellingBefore,
			SellingAfter:   p.SellingPrice,
			PurchaseBefore: purchaseBefore,
			PurchaseAfter:  p.PurchasePrice,
			Reason:         "manual",
		}
		if err := s.priceRepo.Create(ctx, h); err != nil {
			return nil, true, err
		}
	}

	return productToResponse(p), true, nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	// Existing invoices keep their snapshotted name/price/HSN lines; nothing
	// cascades. Stock movement and price history rows also stay behind.
	s.notifier.Notify("product.deleted", "Product removed",
		fmt.Sprintf("%s has been removed from the catalog", p.Name))
	return true, nil
}

func (s *catalogService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return data, nil
}

func (s *catalogService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	after := p.Quantity + req.Delta
	if after < 0 {
		return nil, apierror.NewValidation(map[string]string{
			"delta": fmt.Sprintf("Adjustment would take stock below zero (current: %d)", p.Quantity),
		})
	}

	if err := s.repo.AdjustStock(ctx, id, req.Delta); err != nil {
		// The guarded update also catches a concurrent change between the
		// read above and the write.
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apierror.NewValidation(map[string]string{
				"delta": "Adjustment would take stock below zero",
			})
		}
		return nil, err
	}

	mov := &model.StockMovement{
		ProductID:   p.ID,
		Type:        "manual_adjustment",
		Quantity:    req.Delta,
		StockBefore: p.Quantity,
		StockAfter:  after,
		Reason:      req.Reason,
	}
	if err := s.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	p.Quantity = after
	if after <= p.LowStockThreshold {
		s.notifier.Notify("product.low_stock", "Low stock",
			fmt.Sprintf("%s is down to %d %s", p.Name, after, p.Unit))
	}
	return productToResponse(p), nil
}

func (s *catalogService) Movements(ctx context.Context, productID uuid.UUID) ([]dto.StockMovementResponse, error) {
	movements, err := s.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		var ref *string
		if m.ReferenceID != nil {
			v := m.ReferenceID.String()
			ref = &v
		}
		data = append(data, dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			ReferenceID: ref,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		})
	}
	return data, nil
}

func (s *catalogService) PriceHistory(ctx context.Context, productID uuid.UUID) ([]dto.PriceHistoryResponse, error) {
	history, err := s.priceRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PriceHistoryResponse, 0, len(history))
	for _, h := range history {
		data = append(data, dto.PriceHistoryResponse{
			ID:             h.ID.String(),
			ProductID:      h.ProductID.String(),
			SellingBefore:  h.SellingBefore,
			SellingAfter:   h.SellingAfter,
			PurchaseBefore: h.PurchaseBefore,
			PurchaseAfter:  h.PurchaseAfter,
			Reason:         h.Reason,
			CreatedAt:      h.CreatedAt.Format(time.RFC3339),
		})
	}
	return data, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		SKU:               p.SKU,
		HSN:               p.HSN,
		MRP:               p.MRP,
		SellingPrice:      p.SellingPrice,
		PurchasePrice:     p.PurchasePrice,
		Quantity:          p.Quantity,
		Unit:              p.Unit,
		Category:          p.Category,
		LowStockThreshold: p.LowStockThreshold,
		GSTRate:           p.GSTRate,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		LowStock:          p.Quantity <= p.LowStockThreshold,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
