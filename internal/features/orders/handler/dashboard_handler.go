package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"orne-dashboard/internal/core/logger"
	"orne-dashboard/internal/features/orders/domain"
	"orne-dashboard/internal/features/orders/ports"
	"orne-dashboard/internal/features/orders/service"
	trackingdomain "orne-dashboard/internal/features/tracking/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler handles HTTP requests for the orders dashboard.
type DashboardHandler struct {
	// service runs the refresh cycle.
	service ports.DashboardService
	// health is the static health payload, fixed at boot.
	health HealthResponse
}

// NewDashboardHandler creates a new instance of DashboardHandler.
// trackingEnabled and cacheEnabled reflect the boot-time configuration
// and are reported on the health endpoint.
func NewDashboardHandler(s ports.DashboardService, trackingEnabled, cacheEnabled bool) *DashboardHandler {
	return &DashboardHandler{
		service: s,
		health: HealthResponse{
			Status:          "ok",
			TrackingEnabled: trackingEnabled,
			CacheEnabled:    cacheEnabled,
		},
	}
}

// GetDashboard handles the request for the enriched order dashboard.
// @Summary Orders dashboard
// @Description In-transit orders enriched with tracking status, priority and metrics.
// @Produce json
// @Param search query string false "Match against order name, customer name, email or tracking number"
// @Param priority query string false "Filter by priority tier (critical, high, medium, normal, all)"
// @Param sort_by query string false "Sort key (days_since_order, days_in_transit, last_tracking_update, order_number)"
// @Param order query string false "Sort direction (asc or desc)"
// @Param refresh query bool false "Bypass the cached snapshot"
// @Success 200 {object} DashboardResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/orders [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	forceRefresh := c.QueryBool("refresh")

	snapshot, err := h.service.GetDashboard(c.Context(), forceRefresh)
	if err != nil {
		logger.Get().Error("Failed to build dashboard",
			zap.String("ray_id", rayID),
			zap.Error(err),
		)

		status := http.StatusInternalServerError
		msg := "Internal Server Error"

		if errors.Is(err, service.ErrOrderSource) {
			status = http.StatusBadGateway
			msg = "Failed to fetch dashboard data from upstream services"
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	filters := domain.DashboardFilters{
		Search:     c.Query("search"),
		Priority:   c.Query("priority"),
		SortBy:     c.Query("sort_by"),
		Descending: c.Query("order", "desc") == "desc",
	}
	orders := filters.Apply(snapshot.Orders)

	return c.Status(http.StatusOK).JSON(DashboardResponse{
		Orders:     decorate(orders),
		Metrics:    snapshot.Metrics,
		LastUpdate: snapshot.LastUpdate,
	})
}

// GetHealth reports process liveness.
// @Summary Health check
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *DashboardHandler) GetHealth(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.health)
}

// decorate attaches presentation metadata to each order.
func decorate(orders []domain.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, OrderView{
			Order:   order,
			Display: displayFor(order),
		})
	}
	return views
}

// displayFor derives the display block from the order's current state.
func displayFor(order domain.Order) DisplayMetadata {
	display := DisplayMetadata{
		Priority: order.Priority.Style(),
	}

	// Prefer the detected carrier; "Auto" means the number's shape told
	// us nothing, so the store's own label wins when present.
	carrier := trackingdomain.DetectCarrier(order.TrackingNumber)
	display.Carrier = carrier.Name
	if carrier.Code == 0 && order.CarrierName != "" {
		display.Carrier = order.CarrierName
	}

	if order.TrackingNumber != "" {
		display.TrackingLink = domain.AggregatorLink(order.TrackingNumber)
	}

	if order.CustomerPhone != "" {
		message := fmt.Sprintf("Olá %s! Temos uma atualização sobre o seu pedido %s.",
			order.CustomerName, order.OrderName)
		display.WhatsAppLink = domain.WhatsAppLink(order.CustomerPhone, message)
	}

	return display
}

// DashboardResponse is the dashboard payload.
type DashboardResponse struct {
	// Orders is the filtered, sorted, decorated collection.
	Orders []OrderView `json:"orders"`
	// Metrics summarizes the full snapshot before request filters.
	Metrics domain.DashboardMetrics `json:"metrics"`
	// LastUpdate is when the underlying snapshot was built.
	LastUpdate time.Time `json:"last_update"`
}

// OrderView is one order plus its presentation metadata.
type OrderView struct {
	domain.Order
	// Display carries everything the UI renders verbatim.
	Display DisplayMetadata `json:"display"`
}

// DisplayMetadata is presentation data derived server-side so clients
// stay dumb.
type DisplayMetadata struct {
	// Priority is the badge for the order's priority tier.
	Priority domain.PriorityStyle `json:"priority"`
	// Carrier is the carrier label, detected from the tracking number
	// with the store's own label as fallback.
	Carrier string `json:"carrier,omitempty"`
	// TrackingLink is the public aggregator page for the shipment.
	TrackingLink string `json:"tracking_link,omitempty"`
	// WhatsAppLink opens a chat with the customer; empty when no valid
	// phone is on file.
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	// Status is "ok" while the process serves traffic.
	Status string `json:"status"`
	// TrackingEnabled is false when no aggregator API key is
	// configured and tracking lookups are degraded to no-ops.
	TrackingEnabled bool `json:"tracking_enabled"`
	// CacheEnabled reports whether the snapshot cache is connected.
	CacheEnabled bool `json:"cache_enabled"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
