package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	discountports "github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"
)

const tracerName = "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/observability/service"

// Service decorates the discount service with tracing, logging, and metrics.
type Service struct {
	inner   discountports.Service
	rec     platformobs.Recorder
	metrics serviceMetrics
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
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner discountports.Service, opts ...Option) discountports.Service {
	s := &Service{inner: inner, rec: platformobs.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListDiscounts(ctx context.Context, ownerID int64) ([]*discountdomain.Discount, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.ListDiscounts",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID)},
		func(ctx context.Context) ([]*discountdomain.Discount, error) { return s.inner.ListDiscounts(ctx, ownerID) })
}

func (s *Service) ListActiveDiscounts(ctx context.Context, ownerID int64, now time.Time) ([]*discountdomain.Discount, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.ListActiveDiscounts",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID)},
		func(ctx context.Context) ([]*discountdomain.Discount, error) {
			return s.inner.ListActiveDiscounts(ctx, ownerID, now)
		})
}

func (s *Service) ListDiscountsByStatus(ctx context.Context, ownerID int64, status discountdomain.Status, now time.Time) ([]*discountdomain.Discount, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.ListDiscountsByStatus",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID), attribute.String("discount.status", string(status))},
		func(ctx context.Context) ([]*discountdomain.Discount, error) {
			return s.inner.ListDiscountsByStatus(ctx, ownerID, status, now)
		})
}

func (s *Service) ApplicableDiscounts(ctx context.Context, ownerID int64, target discountdomain.Target, now time.Time) ([]*discountdomain.Discount, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.ApplicableDiscounts",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID), attribute.Int64("product.id", target.ProductID)},
		func(ctx context.Context) ([]*discountdomain.Discount, error) {
			return s.inner.ApplicableDiscounts(ctx, ownerID, target, now)
		})
}

func (s *Service) GetDiscount(ctx context.Context, id int64) (*discountdomain.Discount, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.GetDiscount",
		[]attribute.KeyValue{attribute.Int64("discount.id", id)},
		func(ctx context.Context) (*discountdomain.Discount, error) { return s.inner.GetDiscount(ctx, id) })
}

func (s *Service) CreateDiscount(ctx context.Context, ownerID int64, discount discountdomain.Discount) (*discountdomain.Discount, error) {
	ctx, span := s.rec.Start(ctx, "DiscountService.CreateDiscount",
		attribute.Int64("owner.id", ownerID),
		attribute.String("discount.type", string(discount.Type)),
		attribute.String("discount.scope", string(discount.Scope)),
	)
	defer span.End()

	result, err := s.inner.CreateDiscount(ctx, ownerID, discount)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to create discount", slog.Int64("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int64("discount.id", result.ID))
	if s.metrics.created != nil {
		s.metrics.created.Add(ctx, 1, metric.WithAttributes(
			attribute.String("discount.type", string(result.Type)),
			attribute.String("discount.scope", string(result.Scope)),
		))
	}
	s.rec.Info(ctx, "discount created", slog.Int64("discount.id", result.ID), slog.String("discount.name", result.Name))
	return result, nil
}

func (s *Service) UpdateDiscount(ctx context.Context, id int64, change discountdomain.DiscountPatch) (*discountdomain.Discount, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.UpdateDiscount",
		[]attribute.KeyValue{attribute.Int64("discount.id", id)},
		func(ctx context.Context) (*discountdomain.Discount, error) { return s.inner.UpdateDiscount(ctx, id, change) })
}

func (s *Service) DeleteDiscount(ctx context.Context, id int64) (bool, error) {
	return platformobs.Observe(ctx, s.rec, "DiscountService.DeleteDiscount",
		[]attribute.KeyValue{attribute.Int64("discount.id", id)},
		func(ctx context.Context) (bool, error) { return s.inner.DeleteDiscount(ctx, id) })
}

type serviceMetrics struct {
	created metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("discounts.service.created", metric.WithDescription("Number of discounts created"))
	return serviceMetrics{created: created}
}

var _ discountports.Service = (*Service)(nil)
