// Package analytics collects storefront usage from catalog and cart events.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/shoe-catalog/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ModuleName is the name other modules use to depend on analytics.
const ModuleName = "analytics"

// SummaryRequest asks for the top Limit entries of each ranking.
type SummaryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// Module consumes catalog and cart events and serves the summary.
type Module struct {
	store  *Store
	logger types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new analytics module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// RegisterEventConsumers subscribes to catalog and cart events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.CatalogQueriedV1, m.handleCatalogQueried, m,
	); err != nil {
		return fmt.Errorf("failed to register CatalogQueried consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.CartItemAddedV1, m.handleCartItemAdded, m,
	); err != nil {
		return fmt.Errorf("failed to register CartItemAdded consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"CatalogQueried.v1", "CartItemAdded.v1"})
	return nil
}

// RegisterServices registers the summary service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "summary", json.Unmarshal, json.Marshal, m.summary,
	); err != nil {
		return fmt.Errorf("failed to register summary service: %w", err)
	}
	m.logger.Info("Registered analytics services", "services", []string{"summary"})
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Analytics module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Analytics module stopped")
	return nil
}

// Store returns the analytics store.
func (m *Module) Store() *Store {
	return m.store
}

func (m *Module) handleCatalogQueried(_ context.Context, event events.CatalogQueriedEvent, _ *mono.Msg) error {
	m.store.RecordQuery(event.Search, event.Brand, event.ResultCount, event.QueriedAt)
	m.logger.Debug("Recorded catalog query",
		"search", event.Search,
		"brand", event.Brand,
		"results", event.ResultCount)
	return nil
}

func (m *Module) handleCartItemAdded(_ context.Context, event events.CartItemAddedEvent, _ *mono.Msg) error {
	m.store.RecordCartAdd(event.ProductID, event.Quantity, event.AddedAt)
	m.logger.Debug("Recorded add to cart",
		"product_id", event.ProductID,
		"quantity", event.Quantity)
	return nil
}

func (m *Module) summary(_ context.Context, req SummaryRequest, _ *mono.Msg) (Summary, error) {
	return m.store.Summary(req.Limit), nil
}
