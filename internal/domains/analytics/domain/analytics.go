package domain

import (
	"time"

	"github.com/shopspring/decimal"

	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
)

// Window bounds an aggregation in time. Nil bounds are open and both bounds are inclusive.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t lies within the window. A zero timestamp is always in range.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return true
	}
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// OrderFact is the slice of an order analytics reads.
type OrderFact struct {
	ID            int64
	CustomerEmail string
	CreatedAt     time.Time
}

// LineItem is the slice of an order item analytics reads.
type LineItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	Total       float64
}

// ProductFact carries the live product attributes used for profit and category counts.
type ProductFact struct {
	ID         int64
	CategoryID *int64
	Cost       float64
}

type CategoryFact struct {
	ID   int64
	Name string
}

type ProductRevenue struct {
	ProductID int64
	Name      string
	Revenue   float64
}

type CategoryCount struct {
	CategoryID int64
	Name       string
	Count      int
}

type Stats struct {
	TotalRevenue   float64
	TotalProfit    float64
	TotalCustomers int
	ActiveProducts int
}

// Dashboard is the summary rendered on the back-office landing page.
type Dashboard struct {
	Stats                   Stats
	ProductCountsByCategory []CategoryCount
	RecentOrders            []*orderdomain.OrderDetails
	ActiveDiscounts         []*discountdomain.Discount
}

// RevenueByProduct groups the totals of in-window items by product. Rows appear in the order
// their product is first seen while scanning items, and the name is the first item's snapshot.
// Items whose order is not among orders are ignored.
func RevenueByProduct(orders []OrderFact, items []LineItem, w Window) []ProductRevenue {
	inRange := ordersInWindow(orders, w)
	index := make(map[int64]int)
	sums := make([]decimal.Decimal, 0)
	rows := make([]ProductRevenue, 0)
	for _, item := range items {
		if !inRange[item.OrderID] {
			continue
		}
		i, seen := index[item.ProductID]
		if !seen {
			i = len(rows)
			index[item.ProductID] = i
			rows = append(rows, ProductRevenue{ProductID: item.ProductID, Name: item.ProductName})
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(decimal.NewFromFloat(item.Total))
	}
	for i := range rows {
		rows[i].Revenue = sums[i].InexactFloat64()
	}
	return rows
}

// TotalRevenue sums the revenue of every row.
func TotalRevenue(rows []ProductRevenue) float64 {
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(decimal.NewFromFloat(row.Revenue))
	}
	return sum.InexactFloat64()
}

// Profit sums item.Total - product.Cost*item.Quantity over items of in-window orders, using the
// product's current cost. Items whose product no longer exists contribute nothing.
func Profit(orders []OrderFact, items []LineItem, products map[int64]ProductFact, w Window) float64 {
	inRange := ordersInWindow(orders, w)
	sum := decimal.Zero
	for _, item := range items {
		if !inRange[item.OrderID] {
			continue
		}
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		cost := decimal.NewFromFloat(product.Cost).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(decimal.NewFromFloat(item.Total).Sub(cost))
	}
	return sum.InexactFloat64()
}

// DistinctCustomers counts distinct customer emails. Comparison is exact.
func DistinctCustomers(orders []OrderFact) int {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		seen[o.CustomerEmail] = struct{}{}
	}
	return len(seen)
}

// CountByCategory counts, for every category in order, the products pointing at it.
// Categories without products are reported with zero.
func CountByCategory(categories []CategoryFact, products []ProductFact) []CategoryCount {
	counts := make(map[int64]int)
	for _, p := range products {
		if p.CategoryID != nil {
			counts[*p.CategoryID]++
		}
	}
	out := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryCount{CategoryID: c.ID, Name: c.Name, Count: counts[c.ID]})
	}
	return out
}

func ordersInWindow(orders []OrderFact, w Window) map[int64]bool {
	inRange := make(map[int64]bool, len(orders))
	for _, o := range orders {
		if w.Contains(o.CreatedAt) {
			inRange[o.ID] = true
		}
	}
	return inRange
}
