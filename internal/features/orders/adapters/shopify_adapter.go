package adapter

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

	"orne-dashboard/internal/core/config"
	"orne-dashboard/internal/core/httpclient"
	"orne-dashboard/internal/core/logger"
	"orne-dashboard/internal/features/orders/domain"

	"go.uber.org/zap"
)

const (
	// apiVersion pins the Shopify Admin REST API version.
	apiVersion = "2024-01"
	// orderWindowDays is the trailing window for in-transit orders.
	orderWindowDays = 60
	// pageLimit is Shopify's maximum page size.
	pageLimit = 250
)

// orderFields trims the response to what the dashboard consumes.
var orderFields = strings.Join([]string{
	"id", "name", "order_number", "created_at", "financial_status",
	"fulfillment_status", "total_price", "currency", "customer",
	"fulfillments", "shipping_address", "billing_address",
}, ",")

// ShopifyAdapter implements the OrderProvider port using the Shopify
// Admin REST API.
type ShopifyAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the store connection details.
	config config.ShopifyConfig
	// now is injectable so the 60-day window is testable.
	now func() time.Time
}

// NewShopifyAdapter creates a new ShopifyAdapter.
func NewShopifyAdapter(cfg config.ShopifyConfig) *ShopifyAdapter {
	return &ShopifyAdapter{
		client: httpclient.NewClient(20 * time.Second),
		config: cfg,
		now:    time.Now,
	}
}

// baseURL resolves the store address. Domains are assumed to be HTTPS
// unless an explicit scheme is given.
func (a *ShopifyAdapter) baseURL() string {
	if strings.Contains(a.config.StoreDomain, "://") {
		return a.config.StoreDomain
	}
	return "https://" + a.config.StoreDomain
}

// ListInTransit fetches orders shipped but not delivered in the last
// 60 days and maps them to the domain shape. Orders without any
// tracked fulfillment are dropped here: they cannot appear on the
// dashboard anyway.
func (a *ShopifyAdapter) ListInTransit(ctx context.Context) ([]domain.Order, error) {
	if a.config.StoreDomain == "" || a.config.AccessToken == "" {
		return nil, fmt.Errorf("shopify credentials not configured: set SHOPIFY_STORE_DOMAIN and SHOPIFY_ACCESS_TOKEN")
	}

	windowStart := a.now().AddDate(0, 0, -orderWindowDays)

	query := url.Values{}
	query.Set("status", "any")
	query.Set("fulfillment_status", "shipped")
	query.Set("created_at_min", windowStart.Format(time.RFC3339))
	query.Set("limit", strconv.Itoa(pageLimit))
	query.Set("fields", orderFields)

	endpoint := fmt.Sprintf("%s/admin/api/%s/orders.json?%s",
		a.baseURL(), apiVersion, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("shopify API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload struct {
		Orders []shopifyOrder `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	orders := make([]domain.Order, 0, len(payload.Orders))
	for _, raw := range payload.Orders {
		if order, ok := a.mapToDomain(raw); ok {
			orders = append(orders, order)
		}
	}

	logger.Get().Info("Fetched in-transit orders",
		zap.Int("total", len(payload.Orders)),
		zap.Int("with_tracking", len(orders)),
	)

	return orders, nil
}

// mapToDomain converts a raw Shopify order into a domain Order. The
// second return is false when no fulfillment carries a tracking number.
func (a *ShopifyAdapter) mapToDomain(raw shopifyOrder) (domain.Order, bool) {
	// First fulfillment with a tracking number wins. Split shipments
	// with several tracked fulfillments are a known simplification.
	var fulfillment *shopifyFulfillment
	for i := range raw.Fulfillments {
		if raw.Fulfillments[i].TrackingNumber != "" {
			fulfillment = &raw.Fulfillments[i]
			break
		}
	}
	if fulfillment == nil {
		return domain.Order{}, false
	}

	order := domain.Order{
		ID:            strconv.FormatInt(raw.ID, 10),
		OrderNumber:   strconv.Itoa(raw.OrderNumber),
		OrderName:     raw.Name,
		CreatedAt:     time.Time(raw.CreatedAt),
		CustomerName:  customerName(raw.Customer),
		CustomerPhone: resolvePhone(raw),
		TotalPrice:    raw.TotalPrice,
		Currency:      raw.Currency,

		TrackingNumber: fulfillment.TrackingNumber,
		TrackingURL:    fulfillment.TrackingURL,
		CarrierName:    fulfillment.TrackingCompany,

		Priority:       domain.PriorityNormal,
		TrackingEvents: nil,
	}

	if raw.Customer != nil {
		order.CustomerEmail = raw.Customer.Email
	}

	if shipped := time.Time(fulfillment.CreatedAt); !shipped.IsZero() {
		order.ShippedAt = &shipped
	}

	return order, true
}

// customerName joins the customer's names, falling back to a
// placeholder for guest checkouts.
func customerName(customer *shopifyCustomer) string {
	if customer == nil {
		return "Cliente não identificado"
	}
	name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	if name == "" {
		return "Cliente não identificado"
	}
	return name
}

// resolvePhone walks the fallback chain: shipping address, billing
// address, then the customer profile.
func resolvePhone(raw shopifyOrder) string {
	if raw.ShippingAddress != nil && raw.ShippingAddress.Phone != "" {
		return raw.ShippingAddress.Phone
	}
	if raw.BillingAddress != nil && raw.BillingAddress.Phone != "" {
		return raw.BillingAddress.Phone
	}
	if raw.Customer != nil {
		return raw.Customer.Phone
	}
	return ""
}

// internal structs for mapping

// shopifyOrder represents the JSON structure of an order from the
// Shopify Admin API.
type shopifyOrder struct {
	// ID is the unique order ID.
	ID int64 `json:"id"`
	// Name is the display label (e.g. "#1234").
	Name string `json:"name"`
	// OrderNumber is the sequential order number.
	OrderNumber int `json:"order_number"`
	// CreatedAt is when the order was placed.
	CreatedAt shopifyTime `json:"created_at"`
	// TotalPrice is the order total.
	TotalPrice string `json:"total_price"`
	// Currency is the ISO currency code.
	Currency string `json:"currency"`
	// Customer holds the customer profile; nil for deleted customers.
	Customer *shopifyCustomer `json:"customer"`
	// Fulfillments lists the shipped packages.
	Fulfillments []shopifyFulfillment `json:"fulfillments"`
	// ShippingAddress holds the delivery address.
	ShippingAddress *shopifyAddress `json:"shipping_address"`
	// BillingAddress holds the billing address.
	BillingAddress *shopifyAddress `json:"billing_address"`
}

// shopifyCustomer holds the customer profile fields we consume.
type shopifyCustomer struct {
	// Email is the customer's email address.
	Email string `json:"email"`
	// FirstName is the customer's first name.
	FirstName string `json:"first_name"`
	// LastName is the customer's last name.
	LastName string `json:"last_name"`
	// Phone is the profile-level phone, last in the fallback chain.
	Phone string `json:"phone"`
}

// shopifyFulfillment represents one shipped package within an order.
type shopifyFulfillment struct {
	// Status is the fulfillment status.
	Status string `json:"status"`
	// CreatedAt is when the fulfillment was created (ship date).
	CreatedAt shopifyTime `json:"created_at"`
	// TrackingNumber is the carrier tracking code, if any.
	TrackingNumber string `json:"tracking_number"`
	// TrackingURL is the carrier's tracking page.
	TrackingURL string `json:"tracking_url"`
	// TrackingCompany is the carrier label set by the store.
	TrackingCompany string `json:"tracking_company"`
}

// shopifyAddress carries the single address field the dashboard needs.
type shopifyAddress struct {
	// Phone is the address-level contact phone.
	Phone string `json:"phone"`
}

// shopifyTime handles Shopify's ISO8601 timestamps, tolerating null.
type shopifyTime time.Time

// UnmarshalJSON parses the Shopify date format.
func (t *shopifyTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = shopifyTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		logger.Get().Warn("Failed to parse Shopify date", zap.String("date", s), zap.Error(err))
		return nil
	}
	*t = shopifyTime(parsed)
	return nil
}
