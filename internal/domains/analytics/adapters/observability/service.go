package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	analyticsdomain "github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	analyticsports "github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"
)

const tracerName = "github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/observability/service"

// Service decorates the analytics service with tracing and logging.
type Service struct {
	inner   analyticsports.Service
	rec     platformobs.Recorder
	exports metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.rec.Logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		if tr != nil {
			s.rec.Tracer = tr
		}
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m != nil {
			s.exports, _ = m.Int64Counter("analytics.service.exports", metric.WithDescription("Number of revenue reports exported"))
		}
	}
}

func New(inner analyticsports.Service, opts ...Option) analyticsports.Service {
	s := &Service{inner: inner, rec: platformobs.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ProductRevenue(ctx context.Context, ownerID int64, window analyticsdomain.Window) ([]analyticsdomain.ProductRevenue, error) {
	return platformobs.Observe(ctx, s.rec, "AnalyticsService.ProductRevenue", windowAttrs(ownerID, window),
		func(ctx context.Context) ([]analyticsdomain.ProductRevenue, error) {
			return s.inner.ProductRevenue(ctx, ownerID, window)
		})
}

func (s *Service) TotalRevenue(ctx context.Context, ownerID int64, window analyticsdomain.Window) (float64, error) {
	return platformobs.Observe(ctx, s.rec, "AnalyticsService.TotalRevenue", windowAttrs(ownerID, window),
		func(ctx context.Context) (float64, error) { return s.inner.TotalRevenue(ctx, ownerID, window) })
}

func (s *Service) TotalProfit(ctx context.Context, ownerID int64, window analyticsdomain.Window) (float64, error) {
	return platformobs.Observe(ctx, s.rec, "AnalyticsService.TotalProfit", windowAttrs(ownerID, window),
		func(ctx context.Context) (float64, error) { return s.inner.TotalProfit(ctx, ownerID, window) })
}

func (s *Service) TotalCustomers(ctx context.Context, ownerID int64) (int, error) {
	return platformobs.Observe(ctx, s.rec, "AnalyticsService.TotalCustomers",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID)},
		func(ctx context.Context) (int, error) { return s.inner.TotalCustomers(ctx, ownerID) })
}

func (s *Service) ProductCounts(ctx context.Context, ownerID int64) ([]analyticsdomain.CategoryCount, error) {
	return platformobs.Observe(ctx, s.rec, "AnalyticsService.ProductCounts",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID)},
		func(ctx context.Context) ([]analyticsdomain.CategoryCount, error) {
			return s.inner.ProductCounts(ctx, ownerID)
		})
}

func (s *Service) Dashboard(ctx context.Context, ownerID int64, now time.Time) (*analyticsdomain.Dashboard, error) {
	return platformobs.Observe(ctx, s.rec, "AnalyticsService.Dashboard",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID)},
		func(ctx context.Context) (*analyticsdomain.Dashboard, error) { return s.inner.Dashboard(ctx, ownerID, now) })
}

func (s *Service) ExportProductRevenue(ctx context.Context, ownerID int64, window analyticsdomain.Window, w io.Writer) error {
	ctx, span := s.rec.Start(ctx, "AnalyticsService.ExportProductRevenue", windowAttrs(ownerID, window)...)
	defer span.End()

	if err := s.inner.ExportProductRevenue(ctx, ownerID, window, w); err != nil {
		return s.rec.Fail(ctx, span, err, "failed to export product revenue", slog.Int64("owner.id", ownerID))
	}
	if s.exports != nil {
		s.exports.Add(ctx, 1)
	}
	s.rec.Info(ctx, "product revenue exported", slog.Int64("owner.id", ownerID))
	return nil
}

func windowAttrs(ownerID int64, w analyticsdomain.Window) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.Int64("owner.id", ownerID)}
	if w.Start != nil {
		attrs = append(attrs, attribute.String("window.start", w.Start.UTC().Format(time.RFC3339)))
	}
	if w.End != nil {
		attrs = append(attrs, attribute.String("window.end", w.End.UTC().Format(time.RFC3339)))
	}
	return attrs
}

var _ analyticsports.Service = (*Service)(nil)
