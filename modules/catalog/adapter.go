package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// catalogAdapter implements CatalogPort over the catalog module's services.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a CatalogPort for the container received via
// SetDependencyServiceContainer.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

func (a *catalogAdapter) Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "query", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("query service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) GetProduct(ctx context.Context, id uint) (*GetProductResponse, error) {
	req := GetProductRequest{ID: id}
	var resp GetProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) Brands(ctx context.Context) (*BrandsResponse, error) {
	req := BrandsRequest{}
	var resp BrandsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "brands", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("brands service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) Stats(ctx context.Context, req *StatsRequest) (*StatsResponse, error) {
	var resp StatsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "stats", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("stats service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) Inventory(ctx context.Context, req *InventoryRequest) (*InventoryResponse, error) {
	var resp InventoryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "inventory", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("inventory service call failed: %w", err)
	}
	return &resp, nil
}
