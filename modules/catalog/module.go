package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/shoe-catalog/datasource"
	domain "github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/events"
	"github.com/example/shoe-catalog/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ModuleName is the name other modules use to depend on the catalog.
const ModuleName = "catalog"

// Module provides catalog services as a mono module.
type Module struct {
	source     domain.Source
	sourceKind string
	threshold  int
	cache      *cache.PluginModule
	service    *Service
	eventBus   mono.EventBus
	logger     types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a catalog module reading from source.
func NewModule(source domain.Source, sourceKind string, lowStockThreshold int, logger types.Logger) *Module {
	return &Module{
		source:     source,
		sourceKind: sourceKind,
		threshold:  lowStockThreshold,
		logger:     logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// SetPlugin receives the optional cache plugin before Start.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != cache.PluginName {
		return
	}
	if cachePlugin, ok := plugin.(*cache.PluginModule); ok {
		m.cache = cachePlugin
		m.logger.Info("Cache plugin injected")
	}
}

// SetEventBus is called by the framework to inject the event bus.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CatalogQueriedV1.ToBase(),
	}
}

// RegisterServices registers the catalog request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "query", json.Unmarshal, json.Marshal, m.query,
	); err != nil {
		return fmt.Errorf("failed to register query service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "brands", json.Unmarshal, json.Marshal, m.brands,
	); err != nil {
		return fmt.Errorf("failed to register brands service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "stats", json.Unmarshal, json.Marshal, m.stats,
	); err != nil {
		return fmt.Errorf("failed to register stats service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "inventory", json.Unmarshal, json.Marshal, m.inventory,
	); err != nil {
		return fmt.Errorf("failed to register inventory service: %w", err)
	}

	m.logger.Info("Registered catalog services",
		"services", []string{"query", "get", "brands", "stats", "inventory"})
	return nil
}

// Start builds the service. Plugins are already running at this point.
func (m *Module) Start(ctx context.Context) error {
	if m.source == nil {
		return fmt.Errorf("catalog source not set")
	}

	var c cache.SnapshotCache
	if m.cache != nil {
		c = m.cache.Port()
	}
	m.service = NewService(m.source, c, m.threshold, m.logger)

	// A previous run may have cached a snapshot of a different source.
	if err := m.service.Invalidate(ctx); err != nil {
		m.logger.Warn("Failed to drop cached catalog", "error", err)
	}
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, catalog queries will not be published")
	}

	m.logger.Info("Catalog module started", "source", m.sourceKind, "cached", c != nil)
	return nil
}

// Stop stops the module. The source is closed by its owner.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Catalog module stopped")
	return nil
}

// Service returns the catalog service. It is nil before Start.
func (m *Module) Service() *Service {
	return m.service
}

// Health checks that the source can be reached.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}

	if pinger, ok := m.source.(datasource.Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("source ping failed: %v", err),
			}
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"source": m.sourceKind,
			"cached": m.cache != nil,
		},
	}
}

func (m *Module) query(ctx context.Context, req QueryRequest, _ *mono.Msg) (QueryResponse, error) {
	q := domain.NewQuery(req.Search, req.Brand, req.Sort)

	products, brands, err := m.service.Query(ctx, q)
	if err != nil {
		return QueryResponse{}, err
	}

	if m.eventBus != nil {
		event := events.CatalogQueriedEvent{
			Search:      q.Search,
			Brand:       q.Brand,
			Sort:        string(q.Sort),
			ResultCount: len(products),
			QueriedAt:   time.Now(),
		}
		if err := events.CatalogQueriedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish CatalogQueried event", "error", err)
		}
	}

	return QueryResponse{
		Query:    q,
		Products: products,
		Total:    len(products),
		Brands:   brands,
	}, nil
}

func (m *Module) getProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (GetProductResponse, error) {
	p, found, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return GetProductResponse{}, err
	}
	if !found {
		return GetProductResponse{Found: false}, nil
	}
	p.Images = p.Gallery()
	return GetProductResponse{
		Found: true,
		Product: &ProductDetail{
			Product: p,
			Sizes:   p.Sizes(),
			InStock: p.InStock(),
		},
	}, nil
}

func (m *Module) brands(ctx context.Context, _ BrandsRequest, _ *mono.Msg) (BrandsResponse, error) {
	brands, err := m.service.Brands(ctx)
	if err != nil {
		return BrandsResponse{}, err
	}
	return BrandsResponse{Brands: brands}, nil
}

func (m *Module) stats(ctx context.Context, req StatsRequest, _ *mono.Msg) (StatsResponse, error) {
	stats, threshold, err := m.service.Stats(ctx, req.LowStockThreshold)
	if err != nil {
		return StatsResponse{}, err
	}
	return StatsResponse{Stats: stats, LowStockThreshold: threshold}, nil
}

func (m *Module) inventory(ctx context.Context, req InventoryRequest, _ *mono.Msg) (InventoryResponse, error) {
	products, err := m.service.Inventory(ctx, req.Search)
	if err != nil {
		return InventoryResponse{}, err
	}
	return InventoryResponse{Products: products, Total: len(products)}, nil
}
