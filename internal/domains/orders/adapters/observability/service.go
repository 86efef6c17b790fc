package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"
)

const tracerName = "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
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

func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{inner: inner, rec: platformobs.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input orderports.PlaceOrderInput) (*orderdomain.OrderDetails, error) {
	ctx, span := s.rec.Start(ctx, "OrderService.PlaceOrder",
		attribute.Int64("owner.id", input.OwnerID),
		attribute.Int("order.items", len(input.Items)),
		attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
	)
	defer span.End()

	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to place order", slog.Int64("owner.id", input.OwnerID))
	}
	span.SetAttributes(attribute.Int64("order.id", result.Order.ID))
	if s.metrics.placed != nil {
		s.metrics.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_status", string(result.Order.PaymentStatus))))
	}
	if s.metrics.orderTotal != nil {
		s.metrics.orderTotal.Record(ctx, result.Order.Total)
	}
	s.rec.Info(ctx, "order placed", slog.Int64("order.id", result.Order.ID), slog.Float64("order.total", result.Order.Total))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*orderdomain.OrderDetails, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.GetOrder", orderAttrs(id),
		func(ctx context.Context) (*orderdomain.OrderDetails, error) { return s.inner.GetOrder(ctx, id) })
}

func (s *Service) ListOrders(ctx context.Context, ownerID int64) ([]*orderdomain.Order, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.ListOrders", ownerAttrs(ownerID),
		func(ctx context.Context) ([]*orderdomain.Order, error) { return s.inner.ListOrders(ctx, ownerID) })
}

func (s *Service) RecentOrders(ctx context.Context, ownerID int64, limit int) ([]*orderdomain.OrderDetails, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.RecentOrders",
		[]attribute.KeyValue{attribute.Int64("owner.id", ownerID), attribute.Int("limit", limit)},
		func(ctx context.Context) ([]*orderdomain.OrderDetails, error) {
			return s.inner.RecentOrders(ctx, ownerID, limit)
		})
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, change orderdomain.OrderPatch) (*orderdomain.Order, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.UpdateOrder", orderAttrs(id),
		func(ctx context.Context) (*orderdomain.Order, error) { return s.inner.UpdateOrder(ctx, id, change) })
}

func (s *Service) AddOrderItem(ctx context.Context, orderID int64, item orderdomain.OrderItem) (*orderdomain.OrderItem, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.AddOrderItem",
		[]attribute.KeyValue{attribute.Int64("order.id", orderID), attribute.Int64("product.id", item.ProductID)},
		func(ctx context.Context) (*orderdomain.OrderItem, error) { return s.inner.AddOrderItem(ctx, orderID, item) })
}

func (s *Service) ListOrderItems(ctx context.Context, orderID int64) ([]*orderdomain.OrderItem, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.ListOrderItems", orderAttrs(orderID),
		func(ctx context.Context) ([]*orderdomain.OrderItem, error) { return s.inner.ListOrderItems(ctx, orderID) })
}

func (s *Service) QuoteRefund(ctx context.Context, orderID int64, itemIDs []int64) (float64, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.QuoteRefund",
		[]attribute.KeyValue{attribute.Int64("order.id", orderID), attribute.Int("return.items", len(itemIDs))},
		func(ctx context.Context) (float64, error) { return s.inner.QuoteRefund(ctx, orderID, itemIDs) })
}

func (s *Service) CreateReturn(ctx context.Context, ret orderdomain.Return) (*orderdomain.ReturnDetails, error) {
	ctx, span := s.rec.Start(ctx, "OrderService.CreateReturn", attribute.Int64("order.id", ret.OrderID))
	defer span.End()

	result, err := s.inner.CreateReturn(ctx, ret)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to create return", slog.Int64("order.id", ret.OrderID))
	}
	span.SetAttributes(attribute.Int64("return.id", result.Return.ID))
	if s.metrics.returns != nil {
		s.metrics.returns.Add(ctx, 1)
	}
	s.rec.Info(ctx, "return requested", slog.Int64("return.id", result.Return.ID), slog.Int64("order.id", ret.OrderID))
	return result, nil
}

func (s *Service) GetReturn(ctx context.Context, id int64) (*orderdomain.ReturnDetails, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.GetReturn", returnAttrs(id),
		func(ctx context.Context) (*orderdomain.ReturnDetails, error) { return s.inner.GetReturn(ctx, id) })
}

func (s *Service) ListReturns(ctx context.Context, ownerID int64) ([]*orderdomain.ReturnDetails, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.ListReturns", ownerAttrs(ownerID),
		func(ctx context.Context) ([]*orderdomain.ReturnDetails, error) { return s.inner.ListReturns(ctx, ownerID) })
}

func (s *Service) UpdateReturn(ctx context.Context, id int64, change orderdomain.ReturnPatch) (*orderdomain.Return, error) {
	return platformobs.Observe(ctx, s.rec, "OrderService.UpdateReturn", returnAttrs(id),
		func(ctx context.Context) (*orderdomain.Return, error) { return s.inner.UpdateReturn(ctx, id, change) })
}

type serviceMetrics struct {
	placed     metric.Int64Counter
	returns    metric.Int64Counter
	orderTotal metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	returns, _ := m.Int64Counter("orders.service.returns_created", metric.WithDescription("Number of return requests filed"))
	orderTotal, _ := m.Float64Histogram("orders.service.order_total", metric.WithDescription("Entered order totals"))
	return serviceMetrics{placed: placed, returns: returns, orderTotal: orderTotal}
}

func ownerAttrs(ownerID int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("owner.id", ownerID)}
}

func orderAttrs(id int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("order.id", id)}
}

func returnAttrs(id int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("return.id", id)}
}

var _ orderports.Service = (*Service)(nil)
