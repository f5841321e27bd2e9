package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/shoe-catalog/domain/cart"
	"github.com/example/shoe-catalog/events"
	catalogmod "github.com/example/shoe-catalog/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ModuleName is the name other modules use to depend on the cart.
const ModuleName = "cart"

// Module provides session carts as a mono module.
type Module struct {
	store       *Store
	service     *Service
	catalogPort catalogmod.CatalogPort
	eventBus    mono.EventBus
	logger      types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
)

// NewModule creates a new cart module.
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

// Dependencies returns the modules the cart needs.
func (m *Module) Dependencies() []string {
	return []string{catalogmod.ModuleName}
}

// SetDependencyServiceContainer receives the catalog's service container.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == catalogmod.ModuleName {
		m.catalogPort = catalogmod.NewCatalogAdapter(container)
	}
}

// SetEventBus is called by the framework to inject the event bus.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CartItemAddedV1.ToBase(),
	}
}

// RegisterServices registers the cart request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-cart", json.Unmarshal, json.Marshal, m.getCart,
	); err != nil {
		return fmt.Errorf("failed to register get-cart service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "add-item", json.Unmarshal, json.Marshal, m.addItem,
	); err != nil {
		return fmt.Errorf("failed to register add-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-item", json.Unmarshal, json.Marshal, m.updateItem,
	); err != nil {
		return fmt.Errorf("failed to register update-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove-item", json.Unmarshal, json.Marshal, m.removeItem,
	); err != nil {
		return fmt.Errorf("failed to register remove-item service: %w", err)
	}

	m.logger.Info("Registered cart services",
		"services", []string{"get-cart", "add-item", "update-item", "remove-item"})
	return nil
}

// Start verifies the catalog dependency and builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.catalogPort == nil {
		return fmt.Errorf("catalog dependency not set")
	}
	m.service = NewService(m.store, m.catalogPort)
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, cart events will not be published")
	}
	m.logger.Info("Cart module started", "depends_on", catalogmod.ModuleName)
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Cart module stopped", "sessions", m.store.Sessions())
	return nil
}

// rejected turns a cart rule violation into a response. Other errors are
// returned to the caller as service failures.
func (m *Module) rejected(err error) (CartResponse, error) {
	code := cart.ErrorCode(err)
	if code == "" {
		return CartResponse{}, err
	}
	return CartResponse{ErrorCode: code, Message: err.Error()}, nil
}

func (m *Module) getCart(_ context.Context, req GetCartRequest, _ *mono.Msg) (CartResponse, error) {
	return toCartResponse(m.service.GetCart(req.SessionID)), nil
}

func (m *Module) addItem(ctx context.Context, req AddItemRequest, _ *mono.Msg) (CartResponse, error) {
	c, item, err := m.service.AddItem(ctx, req)
	if err != nil {
		m.logger.Debug("Add to cart rejected", "product_id", req.ProductID, "error", err)
		return m.rejected(err)
	}

	if m.eventBus != nil {
		event := events.CartItemAddedEvent{
			SessionID: c.SessionID,
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  req.Quantity,
			AddedAt:   c.UpdatedAt,
		}
		if err := events.CartItemAddedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish CartItemAdded event", "error", err)
		}
	}

	m.logger.Info("Item added to cart",
		"session", c.SessionID,
		"product_id", item.ProductID,
		"size", item.Size,
		"quantity", req.Quantity)
	return toCartResponse(c), nil
}

func (m *Module) updateItem(_ context.Context, req UpdateItemRequest, _ *mono.Msg) (CartResponse, error) {
	c, err := m.service.UpdateItem(req)
	if err != nil {
		return m.rejected(err)
	}
	return toCartResponse(c), nil
}

func (m *Module) removeItem(_ context.Context, req RemoveItemRequest, _ *mono.Msg) (CartResponse, error) {
	c, err := m.service.RemoveItem(req)
	if err != nil {
		return m.rejected(err)
	}
	return toCartResponse(c), nil
}
