package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	"github.com/smallbiznis/comercio/internal/product/domain"
	supplierdomain "github.com/smallbiznis/comercio/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	CategoryRepo categorydomain.Repository
	SupplierRepo supplierdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	categoryRepo categorydomain.Repository
	supplierRepo supplierdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("product.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		categoryRepo: p.CategoryRepo,
		supplierRepo: p.SupplierRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	term := strings.TrimSpace(req.Search)
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		p := &items[i]
		if req.LowStockOnly && !isLowStock(p) {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		resp = append(resp, toResponse(p))
	}
	return resp, nil
}

func isLowStock(p *domain.Product) bool {
	return p.Active && p.Stock <= p.MinStock
}

func matchesTerm(p *domain.Product, term string) bool {
	if strings.Contains(p.Code, term) || strings.Contains(p.Name, term) {
		return true
	}
	if p.Description != nil && strings.Contains(*p.Description, term) {
		return true
	}
	if p.Category != nil && strings.Contains(p.Category.Name, term) {
		return true
	}
	if p.Supplier != nil && strings.Contains(p.Supplier.Name, term) {
		return true
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil {
		if int64(p.ID) == n || int64(p.Stock) == n {
			return true
		}
	}
	return false
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" || len(code) > 50 {
		return nil, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 200 {
		return nil, domain.ErrInvalidName
	}
	if req.Stock < 0 {
		return nil, domain.ErrInvalidStock
	}
	if req.MinStock < 0 {
		return nil, domain.ErrInvalidMinStock
	}
	if req.UnitPrice <= 0 {
		return nil, domain.ErrInvalidUnitPrice
	}
	if req.AcquisitionCost < 0 {
		return nil, domain.ErrInvalidCost
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	supplierID, err := s.resolveSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	if taken, err := s.repo.ExistsByCode(ctx, s.db, code, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrCodeTaken
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:              s.genID.Generate(),
		Code:            code,
		Name:            name,
		Description:     trimOptional(req.Description),
		CategoryID:      categoryID,
		SupplierID:      supplierID,
		Stock:           req.Stock,
		MinStock:        req.MinStock,
		UnitPrice:       req.UnitPrice,
		AcquisitionCost: req.AcquisitionCost,
		AcquiredAt:      req.AcquiredAt,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, s.db, product); err != nil {
		return nil, err
	}

	return s.Get(ctx, product.ID.String())
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" || len(code) > 50 {
			return nil, domain.ErrInvalidCode
		}
		if taken, err := s.repo.ExistsByCode(ctx, s.db, code, productID); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrCodeTaken
		}
		item.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 200 {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = trimOptional(req.Description)
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = categoryID
	}
	if req.ClearSupplier {
		item.SupplierID = nil
	} else if req.SupplierID != nil {
		supplierID, err := s.resolveSupplier(ctx, req.SupplierID)
		if err != nil {
			return nil, err
		}
		item.SupplierID = supplierID
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, domain.ErrInvalidStock
		}
		item.Stock = *req.Stock
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, domain.ErrInvalidMinStock
		}
		item.MinStock = *req.MinStock
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, domain.ErrInvalidUnitPrice
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.AcquisitionCost != nil {
		if *req.AcquisitionCost < 0 {
			return nil, domain.ErrInvalidCost
		}
		item.AcquisitionCost = *req.AcquisitionCost
	}
	if req.AcquiredAt != nil {
		item.AcquiredAt = req.AcquiredAt
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.UpdatedAt = time.Now().UTC()
	affected, err := s.repo.Update(ctx, s.db, item)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		existing, err := s.repo.FindByID(ctx, s.db, productID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}

	return s.Get(ctx, productID.String())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	// Sales reference their product with ON DELETE CASCADE, so removing a
	// product takes its sale history with it.
	return s.repo.Delete(ctx, s.db, productID)
}

func (s *Service) resolveCategory(ctx context.Context, raw string) (snowflake.ID, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidCategory
	}
	category, err := s.categoryRepo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, domain.ErrInvalidCategory
	}
	return categoryID, nil
}

func (s *Service) resolveSupplier(ctx context.Context, raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	supplierID, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, domain.ErrInvalidSupplier
	}
	supplier, err := s.supplierRepo.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrInvalidSupplier
	}
	return &supplierID, nil
}

func toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID.String(),
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		UnitPrice:       p.UnitPrice,
		AcquisitionCost: p.AcquisitionCost,
		AcquiredAt:      p.AcquiredAt,
		Active:          p.Active,
		LowStock:        isLowStock(p),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	if p.SupplierID != nil {
		id := p.SupplierID.String()
		resp.SupplierID = &id
	}
	if p.Supplier != nil {
		resp.SupplierName = &p.Supplier.Name
	}
	return resp
}

func trimOptional(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	return &value
}
