package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() []Order {
	updated := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	return []Order{
		{
			OrderNumber: "1003", OrderName: "#1003", CustomerName: "Ana Souza",
			CustomerEmail: "ana@example.com", TrackingNumber: "NM985773507BR",
			Priority: PriorityCritical, DaysSinceOrder: 25, DaysInTransit: 20,
			LastTrackingUpdate: &updated,
		},
		{
			OrderNumber: "1001", OrderName: "#1001", CustomerName: "Bruno Lima",
			CustomerEmail: "bruno@example.com", TrackingNumber: "GBEFUWCT",
			Priority: PriorityNormal, DaysSinceOrder: 5, DaysInTransit: 3,
		},
		{
			OrderNumber: "1002", OrderName: "#1002", CustomerName: "Carla Dias",
			CustomerEmail: "carla@example.com",
			Priority:      PriorityMedium, DaysSinceOrder: 14, DaysInTransit: 12,
		},
	}
}

// TestFilters_Zero verifies the zero filter keeps everything in order.
func TestFilters_Zero(t *testing.T) {
	orders := filterFixture()

	result := DashboardFilters{}.Apply(orders)

	require.Len(t, result, 3)
	assert.Equal(t, "#1003", result[0].OrderName)
	assert.Equal(t, "#1001", result[1].OrderName)
}

// TestFilters_SearchByCustomer verifies case-insensitive customer search.
func TestFilters_SearchByCustomer(t *testing.T) {
	result := DashboardFilters{Search: "bruno"}.Apply(filterFixture())

	require.Len(t, result, 1)
	assert.Equal(t, "#1001", result[0].OrderName)
}

// TestFilters_SearchByTracking verifies search against tracking numbers.
func TestFilters_SearchByTracking(t *testing.T) {
	result := DashboardFilters{Search: "nm9857"}.Apply(filterFixture())

	require.Len(t, result, 1)
	assert.Equal(t, "#1003", result[0].OrderName)
}

// TestFilters_Priority verifies the tier filter, including "all".
func TestFilters_Priority(t *testing.T) {
	result := DashboardFilters{Priority: "critical"}.Apply(filterFixture())
	require.Len(t, result, 1)
	assert.Equal(t, PriorityCritical, result[0].Priority)

	result = DashboardFilters{Priority: "all"}.Apply(filterFixture())
	assert.Len(t, result, 3)
}

// TestFilters_SortByDaysSinceOrder verifies sorting both directions.
func TestFilters_SortByDaysSinceOrder(t *testing.T) {
	result := DashboardFilters{SortBy: SortByDaysSinceOrder}.Apply(filterFixture())
	assert.Equal(t, "#1001", result[0].OrderName)
	assert.Equal(t, "#1003", result[2].OrderName)

	result = DashboardFilters{SortBy: SortByDaysSinceOrder, Descending: true}.Apply(filterFixture())
	assert.Equal(t, "#1003", result[0].OrderName)
}

// TestFilters_SortByOrderNumber verifies numeric order-number sorting.
func TestFilters_SortByOrderNumber(t *testing.T) {
	result := DashboardFilters{SortBy: SortByOrderNumber}.Apply(filterFixture())

	assert.Equal(t, "1001", result[0].OrderNumber)
	assert.Equal(t, "1002", result[1].OrderNumber)
	assert.Equal(t, "1003", result[2].OrderNumber)
}

// TestFilters_SortByLastUpdate verifies orders without updates sort as oldest.
func TestFilters_SortByLastUpdate(t *testing.T) {
	result := DashboardFilters{SortBy: SortByLastTrackingUpdate}.Apply(filterFixture())

	// #1003 is the only order with an update, so it sorts last ascending.
	assert.Equal(t, "#1003", result[2].OrderName)
}

// TestFilters_DoesNotMutateInput verifies Apply copies before sorting.
func TestFilters_DoesNotMutateInput(t *testing.T) {
	orders := filterFixture()

	DashboardFilters{SortBy: SortByDaysSinceOrder}.Apply(orders)

	assert.Equal(t, "#1003", orders[0].OrderName)
}
