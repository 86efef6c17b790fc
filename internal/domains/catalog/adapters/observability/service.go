package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	catalogdomain "github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"
)

const tracerName = "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		rec:     platformobs.NewRecorder(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListProducts(ctx context.Context, ownerID int64) ([]*catalogdomain.Product, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.ListProducts", ownerAttrs(ownerID),
		func(ctx context.Context) ([]*catalogdomain.Product, error) { return s.inner.ListProducts(ctx, ownerID) })
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.GetProduct", idAttrs("product.id", id),
		func(ctx context.Context) (*catalogdomain.Product, error) { return s.inner.GetProduct(ctx, id) })
}

func (s *Service) CreateProduct(ctx context.Context, ownerID int64, product catalogdomain.Product) (*catalogdomain.Product, error) {
	ctx, span := s.rec.Start(ctx, "CatalogService.CreateProduct",
		attribute.Int64("owner.id", ownerID), attribute.String("product.source", string(product.Source)))
	defer span.End()

	s.rec.Info(ctx, "creating product", slog.Int64("owner.id", ownerID), slog.String("product.name", product.Name))
	result, err := s.inner.CreateProduct(ctx, ownerID, product)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to create product", slog.Int64("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int64("product.id", result.ID))
	s.metrics.record(ctx, s.metrics.productsCreated, string(result.Source))
	s.rec.Info(ctx, "product created", slog.Int64("product.id", result.ID))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, change catalogdomain.ProductPatch) (*catalogdomain.Product, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.UpdateProduct", idAttrs("product.id", id),
		func(ctx context.Context) (*catalogdomain.Product, error) { return s.inner.UpdateProduct(ctx, id, change) })
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	deleted, err := platformobs.Observe(ctx, s.rec, "CatalogService.DeleteProduct", idAttrs("product.id", id),
		func(ctx context.Context) (bool, error) { return s.inner.DeleteProduct(ctx, id) })
	if deleted {
		s.metrics.record(ctx, s.metrics.productsDeleted, "")
	}
	return deleted, err
}

func (s *Service) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*catalogdomain.Product, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.ListProductsByCategory", idAttrs("category.id", categoryID),
		func(ctx context.Context) ([]*catalogdomain.Product, error) {
			return s.inner.ListProductsByCategory(ctx, categoryID)
		})
}

func (s *Service) ListProductsByTag(ctx context.Context, tagID int64) ([]*catalogdomain.Product, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.ListProductsByTag", idAttrs("tag.id", tagID),
		func(ctx context.Context) ([]*catalogdomain.Product, error) { return s.inner.ListProductsByTag(ctx, tagID) })
}

func (s *Service) ListCategories(ctx context.Context, ownerID int64) ([]*catalogdomain.Category, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.ListCategories", ownerAttrs(ownerID),
		func(ctx context.Context) ([]*catalogdomain.Category, error) { return s.inner.ListCategories(ctx, ownerID) })
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*catalogdomain.Category, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.GetCategory", idAttrs("category.id", id),
		func(ctx context.Context) (*catalogdomain.Category, error) { return s.inner.GetCategory(ctx, id) })
}

func (s *Service) CreateCategory(ctx context.Context, ownerID int64, category catalogdomain.Category) (*catalogdomain.Category, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.CreateCategory", ownerAttrs(ownerID),
		func(ctx context.Context) (*catalogdomain.Category, error) {
			return s.inner.CreateCategory(ctx, ownerID, category)
		})
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, change catalogdomain.CategoryPatch) (*catalogdomain.Category, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.UpdateCategory", idAttrs("category.id", id),
		func(ctx context.Context) (*catalogdomain.Category, error) { return s.inner.UpdateCategory(ctx, id, change) })
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.DeleteCategory", idAttrs("category.id", id),
		func(ctx context.Context) (bool, error) { return s.inner.DeleteCategory(ctx, id) })
}

func (s *Service) ListTags(ctx context.Context, ownerID int64) ([]*catalogdomain.Tag, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.ListTags", ownerAttrs(ownerID),
		func(ctx context.Context) ([]*catalogdomain.Tag, error) { return s.inner.ListTags(ctx, ownerID) })
}

func (s *Service) GetTag(ctx context.Context, id int64) (*catalogdomain.Tag, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.GetTag", idAttrs("tag.id", id),
		func(ctx context.Context) (*catalogdomain.Tag, error) { return s.inner.GetTag(ctx, id) })
}

func (s *Service) CreateTag(ctx context.Context, ownerID int64, tag catalogdomain.Tag) (*catalogdomain.Tag, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.CreateTag", ownerAttrs(ownerID),
		func(ctx context.Context) (*catalogdomain.Tag, error) { return s.inner.CreateTag(ctx, ownerID, tag) })
}

func (s *Service) UpdateTag(ctx context.Context, id int64, change catalogdomain.TagPatch) (*catalogdomain.Tag, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.UpdateTag", idAttrs("tag.id", id),
		func(ctx context.Context) (*catalogdomain.Tag, error) { return s.inner.UpdateTag(ctx, id, change) })
}

func (s *Service) DeleteTag(ctx context.Context, id int64) (bool, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.DeleteTag", idAttrs("tag.id", id),
		func(ctx context.Context) (bool, error) { return s.inner.DeleteTag(ctx, id) })
}

func (s *Service) AddTagToProduct(ctx context.Context, productID, tagID int64) (*catalogdomain.ProductTag, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.AddTagToProduct", linkAttrs(productID, tagID),
		func(ctx context.Context) (*catalogdomain.ProductTag, error) {
			return s.inner.AddTagToProduct(ctx, productID, tagID)
		})
}

func (s *Service) RemoveTagFromProduct(ctx context.Context, productID, tagID int64) (bool, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.RemoveTagFromProduct", linkAttrs(productID, tagID),
		func(ctx context.Context) (bool, error) { return s.inner.RemoveTagFromProduct(ctx, productID, tagID) })
}

func (s *Service) GetProductTags(ctx context.Context, productID int64) ([]*catalogdomain.Tag, error) {
	return platformobs.Observe(ctx, s.rec, "CatalogService.GetProductTags", idAttrs("product.id", productID),
		func(ctx context.Context) ([]*catalogdomain.Tag, error) { return s.inner.GetProductTags(ctx, productID) })
}

func ownerAttrs(ownerID int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("owner.id", ownerID)}
}

func idAttrs(key string, id int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64(key, id)}
}

func linkAttrs(productID, tagID int64) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.Int64("product.id", productID), attribute.Int64("tag.id", tagID)}
}

type serviceMetrics struct {
	productsCreated metric.Int64Counter
	productsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products created"))
	deleted, _ := m.Int64Counter("catalog.service.products_deleted", metric.WithDescription("Number of products deleted"))
	return serviceMetrics{productsCreated: created, productsDeleted: deleted}
}

func (m serviceMetrics) record(ctx context.Context, counter metric.Int64Counter, source string) {
	if counter == nil {
		return
	}
	if source == "" {
		counter.Add(ctx, 1)
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("product.source", source)))
}

var _ catalogports.Service = (*Service)(nil)
