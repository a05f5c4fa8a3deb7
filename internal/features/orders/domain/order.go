package domain

import (
	"time"

	trackingdomain "orne-dashboard/internal/features/tracking/domain"
)

// Order represents one shipped-but-undelivered order on the dashboard.
// Source facts come from the store; the derived block is recomputed
// from scratch on every refresh cycle and never persisted.
type Order struct {
	// ID is the source system's primary key.
	ID string `json:"id"`
	// OrderNumber is the numeric order identifier.
	OrderNumber string `json:"order_number"`
	// OrderName is the display label (e.g. "#1234").
	OrderName string `json:"order_name"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
	// CustomerName is the customer's full name.
	CustomerName string `json:"customer_name"`
	// CustomerEmail is the customer's contact email.
	CustomerEmail string `json:"customer_email"`
	// CustomerPhone is the best phone found via the fallback chain
	// shipping address, billing address, customer profile. May be empty.
	CustomerPhone string `json:"customer_phone,omitempty"`

	// TrackingNumber is empty when no fulfillment carries a tracking code.
	TrackingNumber string `json:"tracking_number,omitempty"`
	// TrackingURL is the carrier's own tracking page, when the store has it.
	TrackingURL string `json:"tracking_url,omitempty"`
	// CarrierName is the carrier label reported by the store.
	CarrierName string `json:"carrier_name,omitempty"`
	// ShippedAt is when the tracked fulfillment was created; nil if unknown.
	ShippedAt *time.Time `json:"shipped_at,omitempty"`

	// TotalPrice is the order total as reported by the store.
	TotalPrice string `json:"total_price"`
	// Currency is the ISO currency code for TotalPrice.
	Currency string `json:"currency"`

	// Derived fields, set exclusively by the enrichment pipeline.

	// Priority is the triage tier assigned this cycle.
	Priority PriorityLevel `json:"priority"`
	// DaysSinceOrder counts calendar days from CreatedAt to now.
	DaysSinceOrder int `json:"days_since_order"`
	// DaysInTransit counts calendar days from ShippedAt to now; zero
	// when ShippedAt is unknown.
	DaysInTransit int `json:"days_in_transit"`
	// BusinessDaysSinceOrder counts business days from CreatedAt to now.
	BusinessDaysSinceOrder int `json:"business_days_since_order"`

	// TrackingStatus is the aggregator's latest status; empty until a
	// fetch succeeds ("awaiting" in the UI).
	TrackingStatus trackingdomain.TrackingStatus `json:"tracking_status,omitempty"`
	// TrackingEvents lists movement records, most recent first.
	TrackingEvents []trackingdomain.TrackingEvent `json:"tracking_events"`
	// LastTrackingUpdate is the latest carrier event timestamp.
	LastTrackingUpdate *time.Time `json:"last_tracking_update,omitempty"`
	// HasAbnormalStatus flags shipments needing human attention.
	HasAbnormalStatus bool `json:"has_abnormal_status"`
	// AbnormalReason explains the flag; empty when not flagged.
	AbnormalReason string `json:"abnormal_reason,omitempty"`
}

// DashboardMetrics is a pure reduction of the enriched, filtered order
// collection. Recomputed every cycle.
type DashboardMetrics struct {
	// TotalInTransit is the number of orders on the dashboard.
	TotalInTransit int `json:"total_in_transit"`
	// WithProblems counts orders with an abnormal status.
	WithProblems int `json:"with_problems"`
	// Critical counts critical-priority orders.
	Critical int `json:"critical"`
	// MediumPriority counts medium-priority orders.
	MediumPriority int `json:"medium_priority"`
	// HighPriority counts high-priority orders.
	HighPriority int `json:"high_priority"`
	// AverageTransitDays is the rounded mean of positive transit days.
	AverageTransitDays int `json:"average_transit_days"`
	// OldestOrderDays is the maximum DaysSinceOrder on the dashboard.
	OldestOrderDays int `json:"oldest_order_days"`
}

// DashboardSnapshot is the result of one refresh cycle.
type DashboardSnapshot struct {
	// Orders is the enriched, filtered, sorted collection.
	Orders []Order `json:"orders"`
	// Metrics summarizes the collection.
	Metrics DashboardMetrics `json:"metrics"`
	// LastUpdate is when the cycle ran.
	LastUpdate time.Time `json:"last_update"`
}
