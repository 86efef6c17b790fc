package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	userdomain "github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	userports "github.com/Apurer/shop-backoffice/internal/domains/users/ports"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"
)

const tracerName = "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner        userports.Service
	rec          platformobs.Recorder
	usersCreated metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.rec.Logger = logger }
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
		if m == nil {
			return
		}
		s.usersCreated, _ = m.Int64Counter("users.service.created", metric.WithDescription("Number of users registered"))
	}
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{inner: inner, rec: platformobs.NewRecorder(tracerName)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, user userdomain.User) (*userdomain.User, error) {
	ctx, span := s.rec.Start(ctx, "UserService.CreateUser", attribute.String("user.username", user.Username))
	defer span.End()

	result, err := s.inner.CreateUser(ctx, user)
	if err != nil {
		return nil, s.rec.Fail(ctx, span, err, "failed to create user", slog.String("user.username", user.Username))
	}
	span.SetAttributes(attribute.Int64("user.id", result.ID))
	if s.usersCreated != nil {
		s.usersCreated.Add(ctx, 1)
	}
	s.rec.Info(ctx, "user created", slog.Int64("user.id", result.ID))
	return result, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*userdomain.User, error) {
	return platformobs.Observe(ctx, s.rec, "UserService.GetUser", []attribute.KeyValue{attribute.Int64("user.id", id)},
		func(ctx context.Context) (*userdomain.User, error) { return s.inner.GetUser(ctx, id) })
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	return platformobs.Observe(ctx, s.rec, "UserService.GetByUsername", []attribute.KeyValue{attribute.String("user.username", username)},
		func(ctx context.Context) (*userdomain.User, error) { return s.inner.GetByUsername(ctx, username) })
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, change userports.ProfileUpdate) (*userdomain.User, error) {
	return platformobs.Observe(ctx, s.rec, "UserService.UpdateProfile", []attribute.KeyValue{attribute.Int64("user.id", id)},
		func(ctx context.Context) (*userdomain.User, error) { return s.inner.UpdateProfile(ctx, id, change) })
}

var _ userports.Service = (*Service)(nil)
