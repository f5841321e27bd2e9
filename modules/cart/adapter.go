package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/shoe-catalog/domain/cart"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// cartAdapter implements CartPort over the cart module's services.
type cartAdapter struct {
	container mono.ServiceContainer
}

// NewCartAdapter creates a CartPort for the container received via
// SetDependencyServiceContainer.
func NewCartAdapter(container mono.ServiceContainer) CartPort {
	if container == nil {
		panic("cart adapter requires non-nil ServiceContainer")
	}
	return &cartAdapter{container: container}
}

func (a *cartAdapter) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	return callCartService(ctx, a.container, "get-cart", &GetCartRequest{SessionID: sessionID})
}

func (a *cartAdapter) AddItem(ctx context.Context, req *AddItemRequest) (*CartResponse, error) {
	return callCartService(ctx, a.container, "add-item", req)
}

func (a *cartAdapter) UpdateItem(ctx context.Context, req *UpdateItemRequest) (*CartResponse, error) {
	return callCartService(ctx, a.container, "update-item", req)
}

func (a *cartAdapter) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*CartResponse, error) {
	return callCartService(ctx, a.container, "remove-item", req)
}

func callCartService[Req any](ctx context.Context, container mono.ServiceContainer, service string, req *Req) (*CartResponse, error) {
	var resp CartResponse
	if err := helper.CallRequestReplyService(
		ctx, container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", service, err)
	}
	if resp.ErrorCode != "" {
		if sentinel := cart.ErrorFromCode(resp.ErrorCode); sentinel != nil {
			return nil, sentinel
		}
		return nil, fmt.Errorf("%s rejected: %s", service, resp.Message)
	}
	return &resp, nil
}
