package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/shoe-catalog/domain/catalog"
	"github.com/example/shoe-catalog/domain/product"
	"github.com/gofiber/fiber/v2"
)

// ErrBackendStatus is returned when the backend answers with a non-2xx status.
var ErrBackendStatus = errors.New("unexpected backend status")

// BackendSource fetches the catalog from a remote storefront API at
// GET {baseURL}/products.
type BackendSource struct {
	baseURL string
	timeout time.Duration
}

var _ catalog.Source = (*BackendSource)(nil)

// NewBackendSource creates a source for the API rooted at baseURL.
func NewBackendSource(baseURL string, timeout time.Duration) *BackendSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BackendSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Products fetches and decodes the product list. The response may be a bare
// JSON array or an object carrying the list under "data" or "products".
func (s *BackendSource) Products(ctx context.Context) ([]product.Product, error) {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		timeout = min(timeout, remaining)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Get(s.baseURL + "/products").
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to fetch products: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrBackendStatus, code)
	}

	return decodeBackendProducts(body)
}

func decodeBackendProducts(body []byte) ([]product.Product, error) {
	body = bytes.TrimSpace(body)

	var products []product.Product
	if bytes.HasPrefix(body, []byte("[")) {
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}
	} else {
		var envelope struct {
			Data     []product.Product `json:"data"`
			Products []product.Product `json:"products"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}
		products = envelope.Data
		if products == nil {
			products = envelope.Products
		}
	}

	if products == nil {
		products = []product.Product{}
	}
	return products, nil
}

// FindByID fetches a single product from GET {baseURL}/products/{id}.
func (s *BackendSource) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Get(fmt.Sprintf("%s/products/%d", s.baseURL, id)).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Timeout(s.timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to fetch product: %w", errors.Join(errs...))
	}
	if code == fiber.StatusNotFound {
		return nil, ErrNotFound
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrBackendStatus, code)
	}

	body = bytes.TrimSpace(body)
	var envelope struct {
		Data *product.Product `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var p product.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &p, nil
}
