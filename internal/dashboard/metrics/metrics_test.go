package metrics

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return parsed
}

func testSales(t *testing.T) []saledomain.Sale {
	coffeeCat := &categorydomain.Category{ID: snowflake.ID(10), Name: "Coffee"}
	teaCat := &categorydomain.Category{ID: snowflake.ID(11), Name: "Tea"}

	coffee := &productdomain.Product{
		ID: snowflake.ID(1), Name: "Ground Coffee",
		CategoryID: coffeeCat.ID, Category: coffeeCat,
		AcquisitionCost: 1000,
	}
	tea := &productdomain.Product{
		ID: snowflake.ID(2), Name: "Green Tea",
		CategoryID: teaCat.ID, Category: teaCat,
		AcquisitionCost: 500,
	}

	alice := &userdomain.User{ID: snowflake.ID(20), FullName: "Alice"}
	bob := &userdomain.User{ID: snowflake.ID(21), FullName: "Bob"}

	return []saledomain.Sale{
		{
			ID: snowflake.ID(100), ProductID: coffee.ID, Product: coffee,
			UserID: alice.ID, User: alice,
			Quantity: 4, UnitPrice: 2500, Total: 10000,
			SoldAt: day(t, "2026-08-01"),
		},
		{
			ID: snowflake.ID(101), ProductID: coffee.ID, Product: coffee,
			UserID: bob.ID, User: bob,
			Quantity: 2, UnitPrice: 2500, Total: 5000,
			SoldAt: day(t, "2026-08-01"),
		},
		{
			ID: snowflake.ID(102), ProductID: tea.ID, Product: tea,
			UserID: alice.ID, User: alice,
			Quantity: 3, UnitPrice: 1000, Total: 3000,
			SoldAt: day(t, "2026-08-02"),
		},
	}
}

func TestRevenueAndAverageTicket(t *testing.T) {
	sales := testSales(t)

	assert.Equal(t, int64(18000), Revenue(sales))
	assert.Equal(t, int64(6000), AverageTicket(sales))
	assert.Equal(t, int64(0), AverageTicket(nil))
	assert.Equal(t, int64(0), Revenue(nil))
}

func TestGrossProfitSubtractsAcquisitionCost(t *testing.T) {
	sales := testSales(t)

	// 18000 - (4*1000 + 2*1000 + 3*500) = 10500.
	assert.Equal(t, int64(10500), GrossProfit(sales))
}

func TestSalesByDayBucketsChronologically(t *testing.T) {
	buckets := SalesByDay(testSales(t))

	assert.Equal(t, []string{"2026-08-01", "2026-08-02"}, []string{buckets[0].Day, buckets[1].Day})
	assert.Equal(t, 2, buckets[0].SaleCount)
	assert.Equal(t, int64(15000), buckets[0].Revenue)
	assert.Equal(t, int64(3000), buckets[1].Revenue)
}

func TestTopProductsRanksByRevenue(t *testing.T) {
	top := TopProducts(testSales(t), 5)

	assert.Len(t, top, 2)
	assert.Equal(t, "Ground Coffee", top[0].ProductName)
	assert.Equal(t, int64(15000), top[0].Revenue)
	assert.Equal(t, 6, top[0].Quantity)
	assert.Equal(t, "Green Tea", top[1].ProductName)

	limited := TopProducts(testSales(t), 1)
	assert.Len(t, limited, 1)
}

func TestByCategoryGroupsRevenue(t *testing.T) {
	buckets := ByCategory(testSales(t))

	assert.Len(t, buckets, 2)
	assert.Equal(t, "Coffee", buckets[0].CategoryName)
	assert.Equal(t, int64(15000), buckets[0].Revenue)
	assert.Equal(t, 2, buckets[0].SaleCount)
	assert.Equal(t, "Tea", buckets[1].CategoryName)
}

func TestRecentSalesNewestFirst(t *testing.T) {
	recent := RecentSales(testSales(t), 2)

	assert.Len(t, recent, 2)
	assert.Equal(t, "Green Tea", recent[0].ProductName)
	assert.Equal(t, "Alice", recent[0].SellerName)
}

func TestRestockListKeepsActiveAtOrBelowMinimum(t *testing.T) {
	products := []productdomain.Product{
		{ID: snowflake.ID(1), Name: "Low", Stock: 1, MinStock: 5, Active: true},
		{ID: snowflake.ID(2), Name: "Exactly", Stock: 5, MinStock: 5, Active: true},
		{ID: snowflake.ID(3), Name: "Healthy", Stock: 9, MinStock: 5, Active: true},
		{ID: snowflake.ID(4), Name: "Retired", Stock: 0, MinStock: 5, Active: false},
	}

	restock := RestockList(products)

	assert.Len(t, restock, 2)
	assert.Equal(t, "Low", restock[0].ProductName)
	assert.Equal(t, "Exactly", restock[1].ProductName)
}

func TestSellerRankingOrdersByRevenue(t *testing.T) {
	ranking := SellerRanking(testSales(t))

	assert.Len(t, ranking, 2)
	assert.Equal(t, "Alice", ranking[0].SellerName)
	assert.Equal(t, int64(13000), ranking[0].Revenue)
	assert.Equal(t, 2, ranking[0].SaleCount)
	assert.Equal(t, "Bob", ranking[1].SellerName)
}

func TestDayRangeIsHalfOpen(t *testing.T) {
	from, to := DayRange(time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), to)
}
