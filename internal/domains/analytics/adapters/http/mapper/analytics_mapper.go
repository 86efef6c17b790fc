package mapper

import (
	"time"

	analyticsdomain "github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	discountmapper "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/http/mapper"
	ordermapper "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/http/mapper"
)

type ProductRevenue struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
}

type CategoryCount struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

type Stats struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalProfit    float64 `json:"totalProfit"`
	TotalCustomers int     `json:"totalCustomers"`
	ActiveProducts int     `json:"activeProducts"`
}

// Dashboard is the landing page payload.
type Dashboard struct {
	Stats                   Stats                     `json:"stats"`
	ProductCountsByCategory []CategoryCount           `json:"productCountsByCategory"`
	RecentOrders            []ordermapper.Order       `json:"recentOrders"`
	ActiveDiscounts         []discountmapper.Discount `json:"activeDiscounts"`
}

func FromProductRevenue(rows []analyticsdomain.ProductRevenue) []ProductRevenue {
	out := make([]ProductRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductRevenue{ProductID: r.ProductID, Name: r.Name, Revenue: r.Revenue})
	}
	return out
}

func FromCategoryCounts(counts []analyticsdomain.CategoryCount) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, CategoryCount{CategoryID: c.CategoryID, Name: c.Name, Count: c.Count})
	}
	return out
}

// FromDashboard renders d. Discount statuses are evaluated at now.
func FromDashboard(d *analyticsdomain.Dashboard, now time.Time) Dashboard {
	if d == nil {
		return Dashboard{
			ProductCountsByCategory: []CategoryCount{},
			RecentOrders:            []ordermapper.Order{},
			ActiveDiscounts:         []discountmapper.Discount{},
		}
	}
	return Dashboard{
		Stats: Stats{
			TotalRevenue:   d.Stats.TotalRevenue,
			TotalProfit:    d.Stats.TotalProfit,
			TotalCustomers: d.Stats.TotalCustomers,
			ActiveProducts: d.Stats.ActiveProducts,
		},
		ProductCountsByCategory: FromCategoryCounts(d.ProductCountsByCategory),
		RecentOrders:            ordermapper.FromOrderDetailsList(d.RecentOrders),
		ActiveDiscounts:         discountmapper.FromDomainDiscounts(d.ActiveDiscounts, now),
	}
}
