package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Sort keys accepted by the dashboard listing.
const (
	SortByDaysSinceOrder     = "days_since_order"
	SortByDaysInTransit      = "days_in_transit"
	SortByLastTrackingUpdate = "last_tracking_update"
	SortByOrderNumber        = "order_number"
)

// DashboardFilters narrows and reorders the snapshot for display.
// The zero value leaves the pipeline's priority ordering untouched.
type DashboardFilters struct {
	// Search matches order name, customer name, email or tracking
	// number, case-insensitively.
	Search string
	// Priority keeps only one tier; empty or "all" keeps every tier.
	Priority string
	// SortBy picks the sort key; empty keeps the pipeline ordering.
	SortBy string
	// Descending inverts the sort direction.
	Descending bool
}

// Apply returns the filtered, reordered view of the orders. The input
// slice is not modified.
func (f DashboardFilters) Apply(orders []Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		if f.matches(order) {
			result = append(result, order)
		}
	}

	if f.SortBy != "" {
		f.sortOrders(result)
	}

	return result
}

func (f DashboardFilters) matches(order Order) bool {
	if f.Priority != "" && f.Priority != "all" && string(order.Priority) != f.Priority {
		return false
	}

	if f.Search == "" {
		return true
	}

	search := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(order.OrderName), search) ||
		strings.Contains(strings.ToLower(order.CustomerName), search) ||
		strings.Contains(strings.ToLower(order.CustomerEmail), search) ||
		strings.Contains(strings.ToLower(order.TrackingNumber), search)
}

func (f DashboardFilters) sortOrders(orders []Order) {
	less := func(a, b Order) bool {
		switch f.SortBy {
		case SortByDaysInTransit:
			return a.DaysInTransit < b.DaysInTransit
		case SortByLastTrackingUpdate:
			return updateTime(a).Before(updateTime(b))
		case SortByOrderNumber:
			return orderNumberValue(a) < orderNumberValue(b)
		default:
			return a.DaysSinceOrder < b.DaysSinceOrder
		}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if f.Descending {
			return less(orders[j], orders[i])
		}
		return less(orders[i], orders[j])
	})
}

// updateTime treats orders without a tracking update as oldest.
func updateTime(order Order) time.Time {
	if order.LastTrackingUpdate == nil {
		return time.Time{}
	}
	return *order.LastTrackingUpdate
}

// orderNumberValue parses the order number for numeric comparison;
// unparsable numbers sort first.
func orderNumberValue(order Order) int {
	n, err := strconv.Atoi(order.OrderNumber)
	if err != nil {
		return 0
	}
	return n
}
