// Package seed loads the demo back-office account used by local and preview environments.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	catalogdomain "github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	discountports "github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	userdomain "github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	userports "github.com/Apurer/shop-backoffice/internal/domains/users/ports"
)

// DemoUsername identifies the seeded account. Seeding is skipped when it already exists.
const DemoUsername = "demo"

// Services are the use cases the seeder writes through.
type Services struct {
	Users     userports.Service
	Catalog   catalogports.Service
	Discounts discountports.Service
	Orders    orderports.Service
}

// Result reports what Run did.
type Result struct {
	OwnerID int64
	Skipped bool
}

type productSeed struct {
	product  catalogdomain.Product
	category int
}

type itemSeed struct {
	order, product, quantity int
}

// Run creates the demo user with a small catalog, three discounts, four orders and one return.
// Discount windows are placed relative to now.
func Run(ctx context.Context, svc Services, now time.Time, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	existing, err := svc.Users.GetByUsername(ctx, DemoUsername)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "demo data already present", "user_id", existing.ID)
		return &Result{OwnerID: existing.ID, Skipped: true}, nil
	case !errors.Is(err, userports.ErrNotFound):
		return nil, fmt.Errorf("lookup demo user: %w", err)
	}

	user, err := svc.Users.CreateUser(ctx, userdomain.User{
		Username: DemoUsername,
		Password: "password",
		Name:     "Tom Cook",
		Email:    "tom@example.com",
		Avatar:   ptr("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?ixlib=rb-1.2.1&auto=format&fit=facearea&facepad=2&w=256&h=256&q=80"),
	})
	if err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	owner := user.ID

	categories, err := seedCategories(ctx, svc.Catalog, owner)
	if err != nil {
		return nil, err
	}
	products, err := seedProducts(ctx, svc.Catalog, owner, categories)
	if err != nil {
		return nil, err
	}
	if err := seedTags(ctx, svc.Catalog, owner, products); err != nil {
		return nil, err
	}
	if err := seedDiscounts(ctx, svc.Discounts, owner, categories, now); err != nil {
		return nil, err
	}
	orders, err := seedOrders(ctx, svc.Orders, owner, products)
	if err != nil {
		return nil, err
	}

	_, err = svc.Orders.CreateReturn(ctx, orderdomain.Return{
		OrderID:        orders[3].ID,
		Reason:         "Item not as described",
		RequestedItems: []int64{orders[3].ID},
		Status:         orderdomain.ReturnPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create demo return: %w", err)
	}

	logger.InfoContext(ctx, "demo data seeded",
		"user_id", owner,
		"products", len(products),
		"orders", len(orders),
	)
	return &Result{OwnerID: owner}, nil
}

func seedCategories(ctx context.Context, catalog catalogports.Service, owner int64) ([]*catalogdomain.Category, error) {
	inputs := []catalogdomain.Category{
		{Name: "Footwear", Description: ptr("All types of shoes"), ImageURL: ptr("https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")},
		{Name: "Apparel", Description: ptr("Clothing items"), ImageURL: ptr("https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")},
		{Name: "Electronics", Description: ptr("Electronic gadgets"), ImageURL: ptr("https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")},
	}
	out := make([]*catalogdomain.Category, 0, len(inputs))
	for _, in := range inputs {
		created, err := catalog.CreateCategory(ctx, owner, in)
		if err != nil {
			return nil, fmt.Errorf("create category %q: %w", in.Name, err)
		}
		out = append(out, created)
	}
	return out, nil
}

func seedProducts(ctx context.Context, catalog catalogports.Service, owner int64, categories []*catalogdomain.Category) ([]*catalogdomain.Product, error) {
	seeds := []productSeed{
		{category: 2, product: catalogdomain.Product{Name: "Premium Headphones", Description: "High quality headphones", Price: 159, Cost: 80, Stock: 25,
			ImageURL: ptr("https://images.unsplash.com/photo-1555689502-c4b22d76c56f?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")}},
		{category: 2, product: catalogdomain.Product{Name: "Smart Watch", Description: "Latest smartwatch technology", Price: 249, Cost: 150, Stock: 15,
			ImageURL: ptr("https://images.unsplash.com/photo-1546868871-7041f2a55e12?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")}},
		{category: 0, product: catalogdomain.Product{Name: "Running Shoes", Description: "Comfortable running shoes", Price: 120, Cost: 60, Stock: 30,
			ImageURL: ptr("https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")}},
		{category: 1, product: catalogdomain.Product{Name: "T-Shirt", Description: "Cotton t-shirt", Price: 25, Cost: 8, Stock: 100,
			ImageURL: ptr("https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80")}},
	}
	out := make([]*catalogdomain.Product, 0, len(seeds))
	for _, s := range seeds {
		p := s.product
		p.CategoryID = ptr(categories[s.category].ID)
		p.Source = catalogdomain.SourceManual
		created, err := catalog.CreateProduct(ctx, owner, p)
		if err != nil {
			return nil, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		out = append(out, created)
	}
	return out, nil
}

func seedTags(ctx context.Context, catalog catalogports.Service, owner int64, products []*catalogdomain.Product) error {
	names := []string{"New Arrival", "Bestseller", "Limited Edition", "Sale"}
	tags := make([]*catalogdomain.Tag, 0, len(names))
	for _, name := range names {
		created, err := catalog.CreateTag(ctx, owner, catalogdomain.Tag{Name: name})
		if err != nil {
			return fmt.Errorf("create tag %q: %w", name, err)
		}
		tags = append(tags, created)
	}
	// product index -> tag index
	links := [][2]int{{0, 0}, {1, 1}, {2, 3}, {3, 2}}
	for _, l := range links {
		if _, err := catalog.AddTagToProduct(ctx, products[l[0]].ID, tags[l[1]].ID); err != nil {
			return fmt.Errorf("tag product %q: %w", products[l[0]].Name, err)
		}
	}
	return nil
}

func seedDiscounts(ctx context.Context, discounts discountports.Service, owner int64, categories []*catalogdomain.Category, now time.Time) error {
	day := 24 * time.Hour
	inputs := []discountdomain.Discount{
		{
			Name: "Summer Sale", Description: ptr("20% off all apparel"),
			Type: discountdomain.TypePercentage, Value: 20,
			StartDate: ptr(now), EndDate: ptr(now.Add(7 * day)),
			IsActive: true, Scope: discountdomain.ScopeCategory, ScopeID: ptr(categories[1].ID),
		},
		{
			Name: "New Customer", Description: ptr("15% off first purchase"),
			Type: discountdomain.TypePercentage, Value: 15,
			IsActive: true, Scope: discountdomain.ScopeAll,
		},
		{
			Name: "Weekend Flash", Description: ptr("30% off electronics"),
			Type: discountdomain.TypePercentage, Value: 30,
			StartDate: ptr(now.Add(3 * day)), EndDate: ptr(now.Add(5 * day)),
			IsActive: true, Scope: discountdomain.ScopeCategory, ScopeID: ptr(categories[2].ID),
		},
	}
	for _, in := range inputs {
		if _, err := discounts.CreateDiscount(ctx, owner, in); err != nil {
			return fmt.Errorf("create discount %q: %w", in.Name, err)
		}
	}
	return nil
}

func seedOrders(ctx context.Context, orders orderports.Service, owner int64, products []*catalogdomain.Product) ([]*orderdomain.Order, error) {
	inputs := []orderdomain.Order{
		{
			CustomerName: "Sarah Johnson", CustomerEmail: "sarah@example.com", CustomerPhone: ptr("123-456-7890"),
			ShippingAddress: "123 Main St, City, State, 12345", Total: 159.99,
			Status: orderdomain.StatusCompleted, PaymentStatus: orderdomain.PaymentPaid, EscrowStatus: orderdomain.EscrowReleased,
		},
		{
			CustomerName: "Michael Davis", CustomerEmail: "michael@example.com", CustomerPhone: ptr("234-567-8901"),
			ShippingAddress: "456 Oak St, City, State, 12345", Total: 89.99,
			Status: orderdomain.StatusShipped, PaymentStatus: orderdomain.PaymentPaid, EscrowStatus: orderdomain.EscrowPending,
			TrackingNumber: ptr("TRK123456"), ShippingCarrier: ptr("FedEx"),
		},
		{
			CustomerName: "Emily Wilson", CustomerEmail: "emily@example.com", CustomerPhone: ptr("345-678-9012"),
			ShippingAddress: "789 Pine St, City, State, 12345", Total: 129.99,
			Status: orderdomain.StatusProcessing, PaymentStatus: orderdomain.PaymentPaid, EscrowStatus: orderdomain.EscrowPending,
		},
		{
			CustomerName: "James Brown", CustomerEmail: "james@example.com", CustomerPhone: ptr("456-789-0123"),
			ShippingAddress: "101 Elm St, City, State, 12345", Total: 299.99,
			Status: orderdomain.StatusDelivered, PaymentStatus: orderdomain.PaymentPaid, EscrowStatus: orderdomain.EscrowPending,
			TrackingNumber: ptr("TRK789012"), ShippingCarrier: ptr("UPS"),
		},
	}
	items := []itemSeed{
		{order: 0, product: 0, quantity: 1},
		{order: 1, product: 2, quantity: 1},
		{order: 2, product: 3, quantity: 2},
		{order: 3, product: 1, quantity: 1},
		{order: 3, product: 0, quantity: 1},
	}

	out := make([]*orderdomain.Order, 0, len(inputs))
	for i, order := range inputs {
		var lines []orderdomain.OrderItem
		for _, it := range items {
			if it.order != i {
				continue
			}
			p := products[it.product]
			lines = append(lines, orderdomain.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       p.Price,
				Quantity:    it.quantity,
				Total:       p.Price * float64(it.quantity),
			})
		}
		placed, err := orders.PlaceOrder(ctx, orderports.PlaceOrderInput{OwnerID: owner, Order: order, Items: lines})
		if err != nil {
			return nil, fmt.Errorf("place order for %s: %w", order.CustomerEmail, err)
		}
		out = append(out, placed.Order)
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }
