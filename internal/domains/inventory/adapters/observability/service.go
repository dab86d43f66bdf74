package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	invdomain "github.com/florenda/florenda-api/internal/domains/inventory/domain"
	invports "github.com/florenda/florenda-api/internal/domains/inventory/ports"
)

const tracerName = "github.com/florenda/florenda-api/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner   invports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core inventory service.
func New(inner invports.Service, opts ...Option) invports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateItem(ctx context.Context, input invports.ItemMutation) (*invports.ItemView, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CreateItem")
	defer span.End()

	result, err := s.inner.CreateItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create item")
	}
	s.logInfo(ctx, "item created",
		slog.String("item.id", result.Item.ID),
		slog.String("item.sku", result.Item.SKU),
		slog.String("item.status", string(result.StockStatus)))
	return result, nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, input invports.ItemMutation) (*invports.ItemView, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.UpdateItem", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	result, err := s.inner.UpdateItem(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.String("item.id", id))
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*invports.ItemView, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetByID", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.String("item.id", id))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context, filter invports.ListFilter) ([]*invports.ItemView, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.List")
	defer span.End()

	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	span.SetAttributes(attribute.Int("item.count", len(result)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Delete", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete item", slog.String("item.id", id))
	}
	s.logInfo(ctx, "item deleted", slog.String("item.id", id))
	return nil
}

func (s *Service) RecordMovement(ctx context.Context, input invports.MovementInput) (*invports.ItemView, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.RecordMovement",
		trace.WithAttributes(
			attribute.String("item.id", input.ItemID),
			attribute.String("movement.type", string(input.Type)),
			attribute.Int("movement.quantity", input.Quantity)))
	defer span.End()

	s.logInfo(ctx, "recording stock movement",
		slog.String("item.id", input.ItemID),
		slog.String("movement.type", string(input.Type)),
		slog.Int("movement.quantity", input.Quantity))
	result, err := s.inner.RecordMovement(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record movement", slog.String("item.id", input.ItemID))
	}
	s.metrics.recordMovement(ctx, input.Type)
	if result.StockStatus != invdomain.StockInStock {
		s.logInfo(ctx, "item below minimum stock",
			slog.String("item.id", result.Item.ID),
			slog.String("item.status", string(result.StockStatus)),
			slog.Int("item.current_stock", result.Item.CurrentStock))
	}
	return result, nil
}

func (s *Service) Movements(ctx context.Context, itemID string) ([]*invdomain.Movement, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Movements", trace.WithAttributes(attribute.String("item.id", itemID)))
	defer span.End()

	result, err := s.inner.Movements(ctx, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load movements", slog.String("item.id", itemID))
	}
	return result, nil
}

func (s *Service) LowStock(ctx context.Context) ([]*invports.ItemView, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.LowStock")
	defer span.End()

	result, err := s.inner.LowStock(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute low stock alerts")
	}
	span.SetAttributes(attribute.Int("alert.count", len(result)))
	s.metrics.recordAlerts(ctx, len(result))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	movements metric.Int64Counter
	alerts    metric.Int64Gauge
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	movements, _ := m.Int64Counter("inventory.service.movements", metric.WithDescription("Number of stock movements recorded"))
	alerts, _ := m.Int64Gauge("inventory.service.low_stock_alerts", metric.WithDescription("Items currently at or below minimum stock"))
	return serviceMetrics{movements: movements, alerts: alerts}
}

func (m serviceMetrics) recordMovement(ctx context.Context, movementType invdomain.MovementType) {
	if m.movements != nil {
		m.movements.Add(ctx, 1, metric.WithAttributes(attribute.String("movement.type", string(movementType))))
	}
}

func (m serviceMetrics) recordAlerts(ctx context.Context, count int) {
	if m.alerts != nil {
		m.alerts.Record(ctx, int64(count))
	}
}

var _ invports.Service = (*Service)(nil)
