package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AnalyticsPort defines the analytics operations available to other modules.
type AnalyticsPort interface {
	Summary(ctx context.Context, limit int) (*Summary, error)
}

type analyticsAdapter struct {
	container mono.ServiceContainer
}

// NewAnalyticsAdapter creates an AnalyticsPort over the analytics services.
func NewAnalyticsAdapter(container mono.ServiceContainer) AnalyticsPort {
	if container == nil {
		panic("analytics adapter requires non-nil ServiceContainer")
	}
	return &analyticsAdapter{container: container}
}

func (a *analyticsAdapter) Summary(ctx context.Context, limit int) (*Summary, error) {
	req := SummaryRequest{Limit: limit}
	var resp Summary
	if err := helper.CallRequestReplyService(
		ctx, a.container, "summary", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("summary service call failed: %w", err)
	}
	return &resp, nil
}
