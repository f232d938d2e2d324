package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"
)

const maxResponseBytes = 4 << 20

// HTTPClient implements the provider client port over the common SMM panel
// API convention: form-encoded POSTs carrying the API key and an action
// field, JSON responses.
type HTTPClient struct {
	httpClient *http.Client
	logger     coreport.Logger
}

// NewHTTPClient creates a provider client with a bounded request timeout
func NewHTTPClient(timeout time.Duration, logger coreport.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// serviceResponse mirrors the provider's services listing
type serviceResponse struct {
	Service  json.Number `json:"service"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Type     string      `json:"type"`
	Rate     string      `json:"rate"`
	Min      json.Number `json:"min"`
	Max      json.Number `json:"max"`
}

// addOrderResponse mirrors the provider's add-order reply
type addOrderResponse struct {
	Order json.Number `json:"order"`
	Error string      `json:"error"`
}

// statusResponse mirrors the provider's order status reply
type statusResponse struct {
	Status     string      `json:"status"`
	StartCount json.Number `json:"start_count"`
	Remains    json.Number `json:"remains"`
	Charge     string      `json:"charge"`
	Error      string      `json:"error"`
}

// Services fetches the provider's catalog
func (c *HTTPClient) Services(ctx context.Context, p *entity.Provider) ([]providerport.RemoteService, error) {
	form := url.Values{}
	form.Set("key", p.APIKey)
	form.Set("action", "services")

	body, err := c.post(ctx, p, "services", form)
	if err != nil {
		return nil, err
	}

	var raw []serviceResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errs.NewProviderError(p.ID, "services", "malformed response", err)
	}

	services := make([]providerport.RemoteService, 0, len(raw))
	for _, rs := range raw {
		services = append(services, providerport.RemoteService{
			ServiceID: rs.Service.String(),
			Name:      rs.Name,
			Category:  rs.Category,
			Type:      rs.Type,
			Rate:      rs.Rate,
			Min:       numberToInt(rs.Min),
			Max:       numberToInt(rs.Max),
		})
	}
	return services, nil
}

// AddOrder submits an order and returns the provider-side order id
func (c *HTTPClient) AddOrder(ctx context.Context, p *entity.Provider, serviceID, link string, quantity int64) (string, error) {
	form := url.Values{}
	form.Set("key", p.APIKey)
	form.Set("action", "add")
	form.Set("service", serviceID)
	form.Set("link", link)
	form.Set("quantity", strconv.FormatInt(quantity, 10))

	body, err := c.post(ctx, p, "add", form)
	if err != nil {
		return "", err
	}

	var resp addOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.NewProviderError(p.ID, "add", "malformed response", err)
	}
	if resp.Error != "" {
		return "", errs.NewProviderError(p.ID, "add", resp.Error, nil)
	}
	orderID := resp.Order.String()
	if orderID == "" {
		return "", errs.NewProviderError(p.ID, "add", "missing order id", nil)
	}

	c.logger.Info("Order submitted to provider", map[string]any{
		"provider_id":       p.ID,
		"provider_order_id": orderID,
	})
	return orderID, nil
}

// GetOrderStatus fetches the current state of a submitted order
func (c *HTTPClient) GetOrderStatus(ctx context.Context, p *entity.Provider, providerOrderID string) (*providerport.OrderStatus, error) {
	form := url.Values{}
	form.Set("key", p.APIKey)
	form.Set("action", "status")
	form.Set("order", providerOrderID)

	body, err := c.post(ctx, p, "status", form)
	if err != nil {
		return nil, err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.NewProviderError(p.ID, "status", "malformed response", err)
	}
	if resp.Error != "" {
		return nil, errs.NewProviderError(p.ID, "status", resp.Error, nil)
	}

	return &providerport.OrderStatus{
		Status:     resp.Status,
		StartCount: numberToInt(resp.StartCount),
		Remains:    numberToInt(resp.Remains),
		Charge:     resp.Charge,
	}, nil
}

func (c *HTTPClient) post(ctx context.Context, p *entity.Provider, action string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.NewProviderError(p.ID, action, "building request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Provider request failed", map[string]any{
			"provider_id": p.ID,
			"action":      action,
			"error":       err.Error(),
		})
		return nil, errs.NewProviderError(p.ID, action, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewProviderError(p.ID, action, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.NewProviderError(p.ID, action, "reading response", err)
	}
	return body, nil
}

func numberToInt(n json.Number) int64 {
	v, err := n.Int64()
	if err != nil {
		// Some panels report counts as decimal strings
		if f, ferr := n.Float64(); ferr == nil {
			return int64(f)
		}
		return 0
	}
	return v
}
