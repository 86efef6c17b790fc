package ports

import (
	"context"
	"io"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
)

// Service exposes read-only derived metrics. Every call recomputes from the sources.
type Service interface {
	ProductRevenue(ctx context.Context, ownerID int64, window domain.Window) ([]domain.ProductRevenue, error)
	TotalRevenue(ctx context.Context, ownerID int64, window domain.Window) (float64, error)
	TotalProfit(ctx context.Context, ownerID int64, window domain.Window) (float64, error)
	TotalCustomers(ctx context.Context, ownerID int64) (int, error)
	ProductCounts(ctx context.Context, ownerID int64) ([]domain.CategoryCount, error)
	Dashboard(ctx context.Context, ownerID int64, now time.Time) (*domain.Dashboard, error)
	// ExportProductRevenue writes the product revenue rows of the window as an XLSX workbook.
	ExportProductRevenue(ctx context.Context, ownerID int64, window domain.Window, w io.Writer) error
}

// ReportWriter renders product revenue rows into a spreadsheet.
type ReportWriter interface {
	WriteProductRevenue(w io.Writer, window domain.Window, rows []domain.ProductRevenue) error
}
