// Package metrics holds the dashboard aggregations as pure functions
// over already-loaded rows, so every number is testable without a
// database.
package metrics

import (
	"sort"
	"time"

	"github.com/smallbiznis/comercio/internal/dashboard/domain"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
)

const dayFormat = "2006-01-02"

// Revenue sums sale totals.
func Revenue(sales []saledomain.Sale) int64 {
	var sum int64
	for i := range sales {
		sum += sales[i].Total
	}
	return sum
}

// GrossProfit subtracts the acquisition cost of the units sold from
// revenue. Sales whose product is missing contribute revenue only.
func GrossProfit(sales []saledomain.Sale) int64 {
	var profit int64
	for i := range sales {
		profit += sales[i].Total
		if sales[i].Product != nil {
			profit -= sales[i].Product.AcquisitionCost * int64(sales[i].Quantity)
		}
	}
	return profit
}

// AverageTicket is revenue over sale count, zero when empty.
func AverageTicket(sales []saledomain.Sale) int64 {
	if len(sales) == 0 {
		return 0
	}
	return Revenue(sales) / int64(len(sales))
}

// SalesByDay buckets sales per calendar day in chronological order.
func SalesByDay(sales []saledomain.Sale) []domain.DayBucket {
	byDay := make(map[string]*domain.DayBucket)
	for i := range sales {
		day := sales[i].SoldAt.UTC().Format(dayFormat)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &domain.DayBucket{Day: day}
			byDay[day] = bucket
		}
		bucket.SaleCount++
		bucket.Revenue += sales[i].Total
	}

	out := make([]domain.DayBucket, 0, len(byDay))
	for _, bucket := range byDay {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// TopProducts ranks products by revenue, quantity as tie-breaker,
// keeping at most limit entries.
func TopProducts(sales []saledomain.Sale, limit int) []domain.ProductBucket {
	byProduct := make(map[string]*domain.ProductBucket)
	for i := range sales {
		id := sales[i].ProductID.String()
		bucket, ok := byProduct[id]
		if !ok {
			bucket = &domain.ProductBucket{ProductID: id}
			if sales[i].Product != nil {
				bucket.ProductName = sales[i].Product.Name
			}
			byProduct[id] = bucket
		}
		bucket.Quantity += sales[i].Quantity
		bucket.Revenue += sales[i].Total
	}

	out := make([]domain.ProductBucket, 0, len(byProduct))
	for _, bucket := range byProduct {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ByCategory groups revenue per product category. Sales whose product
// or category was not loaded land in an unnamed bucket keyed by the
// empty ID.
func ByCategory(sales []saledomain.Sale) []domain.CategoryBucket {
	byCategory := make(map[string]*domain.CategoryBucket)
	for i := range sales {
		var id, name string
		if sales[i].Product != nil {
			id = sales[i].Product.CategoryID.String()
			if sales[i].Product.Category != nil {
				name = sales[i].Product.Category.Name
			}
		}
		bucket, ok := byCategory[id]
		if !ok {
			bucket = &domain.CategoryBucket{CategoryID: id, CategoryName: name}
			byCategory[id] = bucket
		}
		bucket.SaleCount++
		bucket.Revenue += sales[i].Total
	}

	out := make([]domain.CategoryBucket, 0, len(byCategory))
	for _, bucket := range byCategory {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

// RecentSales returns the newest sales first, at most limit entries.
func RecentSales(sales []saledomain.Sale, limit int) []domain.RecentSale {
	sorted := make([]saledomain.Sale, len(sales))
	copy(sorted, sales)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SoldAt.After(sorted[j].SoldAt) })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]domain.RecentSale, 0, len(sorted))
	for i := range sorted {
		item := domain.RecentSale{
			SaleID:   sorted[i].ID.String(),
			Quantity: sorted[i].Quantity,
			Total:    sorted[i].Total,
			SoldAt:   sorted[i].SoldAt,
		}
		if sorted[i].Product != nil {
			item.ProductName = sorted[i].Product.Name
		}
		if sorted[i].Client != nil {
			item.ClientName = sorted[i].Client.Name
		}
		if sorted[i].User != nil {
			item.SellerName = sorted[i].User.FullName
		}
		out = append(out, item)
	}
	return out
}

// RestockList keeps active products at or below their minimum stock,
// most depleted first.
func RestockList(products []productdomain.Product) []domain.RestockItem {
	out := make([]domain.RestockItem, 0)
	for i := range products {
		p := &products[i]
		if !p.Active || p.Stock > p.MinStock {
			continue
		}
		out = append(out, domain.RestockItem{
			ProductID:   p.ID.String(),
			ProductName: p.Name,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// SellerRanking ranks sellers by revenue.
func SellerRanking(sales []saledomain.Sale) []domain.SellerBucket {
	bySeller := make(map[string]*domain.SellerBucket)
	for i := range sales {
		id := sales[i].UserID.String()
		bucket, ok := bySeller[id]
		if !ok {
			bucket = &domain.SellerBucket{UserID: id}
			if sales[i].User != nil {
				bucket.SellerName = sales[i].User.FullName
			}
			bySeller[id] = bucket
		}
		bucket.SaleCount++
		bucket.Revenue += sales[i].Total
	}

	out := make([]domain.SellerBucket, 0, len(bySeller))
	for _, bucket := range bySeller {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// DayRange returns the UTC day containing t as a half-open interval.
func DayRange(t time.Time) (time.Time, time.Time) {
	day := t.UTC().Truncate(24 * time.Hour)
	return day, day.Add(24 * time.Hour)
}
