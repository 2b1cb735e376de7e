package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/authctx"
	"github.com/smallbiznis/comercio/internal/billing"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	"github.com/smallbiznis/comercio/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProductRepo productdomain.Repository
	ClientRepo  clientdomain.Repository
	Dispatcher  domain.InvoiceDispatcher `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	productRepo productdomain.Repository
	clientRepo  clientdomain.Repository
	dispatcher  domain.InvoiceDispatcher
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("sale.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
		clientRepo:  p.ClientRepo,
		dispatcher:  p.Dispatcher,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	var (
		items []domain.Sale
		err   error
	)
	if req.From != nil || req.To != nil {
		from := time.Time{}
		if req.From != nil {
			from = *req.From
		}
		to := time.Now().UTC().Add(24 * time.Hour)
		if req.To != nil {
			to = *req.To
		}
		items, err = s.repo.FindBetween(ctx, s.db, from, to)
	} else {
		items, err = s.repo.FindAll(ctx, s.db)
	}
	if err != nil {
		return nil, err
	}

	term := strings.TrimSpace(req.Search)
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		if term != "" && !matchesTerm(&items[i], term) {
			continue
		}
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func matchesTerm(sale *domain.Sale, term string) bool {
	if sale.Product != nil && strings.Contains(sale.Product.Name, term) {
		return true
	}
	if sale.Client != nil && strings.Contains(sale.Client.Name, term) {
		return true
	}
	if sale.User != nil && strings.Contains(sale.User.FullName, term) {
		return true
	}
	if strings.Contains(billing.FormatCents(sale.Total), term) {
		return true
	}
	if strings.Contains(sale.SoldAt.Format("2006-01-02"), term) {
		return true
	}
	if n, err := strconv.ParseInt(term, 10, 64); err == nil {
		if int64(sale.ID) == n || int64(sale.Quantity) == n {
			return true
		}
	}
	return false
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, saleID)
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
	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrMissingSeller
	}
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	clientID, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	soldAt := time.Now().UTC()
	if req.SoldAt != nil {
		soldAt = req.SoldAt.UTC()
	}

	saleID := s.genID.Generate()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrInvalidProduct
		}
		if product.Stock < req.Quantity {
			return &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
			}
		}
		if err := s.productRepo.AdjustStock(ctx, tx, productID, -req.Quantity); err != nil {
			return err
		}

		now := time.Now().UTC()
		sale := &domain.Sale{
			ID:        saleID,
			ProductID: productID,
			ClientID:  clientID,
			UserID:    userID,
			Quantity:  req.Quantity,
			UnitPrice: product.UnitPrice,
			Total:     product.UnitPrice * int64(req.Quantity),
			SoldAt:    soldAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.repo.Create(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	s.queueInvoice(item)

	resp := toResponse(item)
	return &resp, nil
}

// queueInvoice hands the billing email off after the transaction has
// committed. A full queue drops the invoice with a log line and never
// fails the sale.
func (s *Service) queueInvoice(sale *domain.Sale) {
	if s.dispatcher == nil {
		return
	}
	if sale.Client == nil || sale.Client.Email == nil {
		return
	}

	inv := domain.Invoice{
		SaleID:      sale.ID.String(),
		Quantity:    sale.Quantity,
		UnitPrice:   sale.UnitPrice,
		Total:       sale.Total,
		SoldAt:      sale.SoldAt,
		ClientName:  sale.Client.Name,
		ClientEmail: *sale.Client.Email,
	}
	if sale.Product != nil {
		inv.ProductName = sale.Product.Name
		inv.ProductCode = sale.Product.Code
	}
	if sale.User != nil {
		inv.SellerName = sale.User.FullName
	}

	if _, accepted := s.dispatcher.Enqueue(inv); !accepted {
		s.log.Warn("invoice queue full, dropping invoice email",
			zap.String("sale_id", inv.SaleID),
			zap.String("client_email", inv.ClientEmail),
		)
	}
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale, err := s.repo.FindByID(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		if req.ClientID != nil {
			clientID, err := s.resolveClientTx(ctx, tx, *req.ClientID)
			if err != nil {
				return err
			}
			sale.ClientID = clientID
		}
		if req.SoldAt != nil {
			sale.SoldAt = req.SoldAt.UTC()
		}
		if req.Quantity != nil && *req.Quantity != sale.Quantity {
			delta := *req.Quantity - sale.Quantity
			if delta > 0 {
				product, err := s.productRepo.FindByID(ctx, tx, sale.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrInvalidProduct
				}
				if product.Stock < delta {
					return &domain.InsufficientStockError{
						ProductName: product.Name,
						Available:   product.Stock,
					}
				}
			}
			if err := s.productRepo.AdjustStock(ctx, tx, sale.ProductID, -delta); err != nil {
				return err
			}
			sale.Quantity = *req.Quantity
			sale.Total = sale.UnitPrice * int64(*req.Quantity)
		}

		sale.UpdatedAt = time.Now().UTC()
		affected, err := s.repo.Update(ctx, tx, sale)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, saleID.String())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	// Stock restoration and row removal commit or roll back together.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale, err := s.repo.FindByID(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := s.productRepo.AdjustStock(ctx, tx, sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, saleID)
	})
}

func (s *Service) resolveClient(ctx context.Context, raw string) (snowflake.ID, error) {
	return s.resolveClientTx(ctx, s.db, raw)
}

// resolveClientTx parses and loads the client a sale is billed to. Every
// sale needs one, so a blank or unknown reference is a field error.
func (s *Service) resolveClientTx(ctx context.Context, db *gorm.DB, raw string) (snowflake.ID, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidClient
	}
	client, err := s.clientRepo.FindByID(ctx, db, clientID)
	if err != nil {
		return 0, err
	}
	if client == nil {
		return 0, domain.ErrInvalidClient
	}
	return clientID, nil
}

func toResponse(sale *domain.Sale) domain.Response {
	resp := domain.Response{
		ID:        sale.ID.String(),
		ProductID: sale.ProductID.String(),
		UserID:    sale.UserID.String(),
		Quantity:  sale.Quantity,
		UnitPrice: sale.UnitPrice,
		Total:     sale.Total,
		SoldAt:    sale.SoldAt,
		CreatedAt: sale.CreatedAt,
		UpdatedAt: sale.UpdatedAt,
	}
	if sale.Product != nil {
		resp.ProductName = sale.Product.Name
		resp.ProductCode = sale.Product.Code
	}
	resp.ClientID = sale.ClientID.String()
	if sale.Client != nil {
		resp.ClientName = sale.Client.Name
		resp.ClientEmail = sale.Client.Email
	}
	if sale.User != nil {
		resp.SellerName = sale.User.FullName
	}
	return resp
}
