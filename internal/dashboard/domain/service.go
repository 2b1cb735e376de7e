package domain

import (
	"context"
	"time"
)

// Service computes read-only dashboards. Management covers a rolling
// window (30 days by default), Operational covers the current day.
type Service interface {
	Management(ctx context.Context, now time.Time) (*ManagementReport, error)
	Operational(ctx context.Context, now time.Time) (*OperationalReport, error)
}

type ManagementReport struct {
	From          time.Time        `json:"from"`
	To            time.Time        `json:"to"`
	SaleCount     int              `json:"sale_count"`
	Revenue       int64            `json:"revenue"`
	GrossProfit   int64            `json:"gross_profit"`
	AverageTicket int64            `json:"average_ticket"`
	SalesByDay    []DayBucket      `json:"sales_by_day"`
	TopProducts   []ProductBucket  `json:"top_products"`
	ByCategory    []CategoryBucket `json:"by_category"`
}

type OperationalReport struct {
	Date            time.Time      `json:"date"`
	TodaySaleCount  int            `json:"today_sale_count"`
	TodayRevenue    int64          `json:"today_revenue"`
	NewClientsToday int            `json:"new_clients_today"`
	LowStockCount   int            `json:"low_stock_count"`
	RecentSales     []RecentSale   `json:"recent_sales"`
	RestockList     []RestockItem  `json:"restock_list"`
	SellerRanking   []SellerBucket `json:"seller_ranking"`
}

type DayBucket struct {
	Day       string `json:"day"`
	SaleCount int    `json:"sale_count"`
	Revenue   int64  `json:"revenue"`
}

type ProductBucket struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Revenue     int64  `json:"revenue"`
}

type CategoryBucket struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	SaleCount    int    `json:"sale_count"`
	Revenue      int64  `json:"revenue"`
}

type RecentSale struct {
	SaleID      string    `json:"sale_id"`
	ProductName string    `json:"product_name"`
	ClientName  string    `json:"client_name,omitempty"`
	SellerName  string    `json:"seller_name,omitempty"`
	Quantity    int       `json:"quantity"`
	Total       int64     `json:"total"`
	SoldAt      time.Time `json:"sold_at"`
}

type RestockItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
}

type SellerBucket struct {
	UserID     string `json:"user_id"`
	SellerName string `json:"seller_name"`
	SaleCount  int    `json:"sale_count"`
	Revenue    int64  `json:"revenue"`
}
