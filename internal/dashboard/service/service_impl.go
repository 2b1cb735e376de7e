package service

import (
	"context"
	"time"

	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	"github.com/smallbiznis/comercio/internal/dashboard/domain"
	"github.com/smallbiznis/comercio/internal/dashboard/metrics"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	managementWindow = 30 * 24 * time.Hour
	topProductLimit  = 5
	recentSaleLimit  = 5
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	SaleRepo    saledomain.Repository
	ProductRepo productdomain.Repository
	ClientRepo  clientdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	saleRepo    saledomain.Repository
	productRepo productdomain.Repository
	clientRepo  clientdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		saleRepo:    p.SaleRepo,
		productRepo: p.ProductRepo,
		clientRepo:  p.ClientRepo,
	}
}

func (s *Service) Management(ctx context.Context, now time.Time) (*domain.ManagementReport, error) {
	to := now.UTC()
	from := to.Add(-managementWindow)

	sales, err := s.saleRepo.FindBetween(ctx, s.db, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.ManagementReport{
		From:          from,
		To:            to,
		SaleCount:     len(sales),
		Revenue:       metrics.Revenue(sales),
		GrossProfit:   metrics.GrossProfit(sales),
		AverageTicket: metrics.AverageTicket(sales),
		SalesByDay:    metrics.SalesByDay(sales),
		TopProducts:   metrics.TopProducts(sales, topProductLimit),
		ByCategory:    metrics.ByCategory(sales),
	}, nil
}

func (s *Service) Operational(ctx context.Context, now time.Time) (*domain.OperationalReport, error) {
	dayStart, dayEnd := metrics.DayRange(now)

	todaySales, err := s.saleRepo.FindBetween(ctx, s.db, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(dayStart.Year(), dayStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthSales, err := s.saleRepo.FindBetween(ctx, s.db, monthStart, dayEnd)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	newClients := 0
	for i := range clients {
		created := clients[i].CreatedAt.UTC()
		if !created.Before(dayStart) && created.Before(dayEnd) {
			newClients++
		}
	}

	restock := metrics.RestockList(products)

	return &domain.OperationalReport{
		Date:            dayStart,
		TodaySaleCount:  len(todaySales),
		TodayRevenue:    metrics.Revenue(todaySales),
		NewClientsToday: newClients,
		LowStockCount:   len(restock),
		RecentSales:     metrics.RecentSales(todaySales, recentSaleLimit),
		RestockList:     restock,
		SellerRanking:   metrics.SellerRanking(monthSales),
	}, nil
}
