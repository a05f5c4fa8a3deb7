package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCalculateMetrics_Empty verifies all counters are zero for an
// empty collection.
func TestCalculateMetrics_Empty(t *testing.T) {
	metrics := CalculateMetrics(nil)

	assert.Equal(t, DashboardMetrics{}, metrics)
}

// TestCalculateMetrics_Counters verifies per-tier and problem counts.
func TestCalculateMetrics_Counters(t *testing.T) {
	orders := []Order{
		{Priority: PriorityCritical, HasAbnormalStatus: true, DaysSinceOrder: 30},
		{Priority: PriorityHigh, DaysSinceOrder: 22},
		{Priority: PriorityMedium, DaysSinceOrder: 14},
		{Priority: PriorityNormal, DaysSinceOrder: 5},
		{Priority: PriorityNormal, DaysSinceOrder: 3},
	}

	metrics := CalculateMetrics(orders)

	assert.Equal(t, 5, metrics.TotalInTransit)
	assert.Equal(t, 1, metrics.WithProblems)
	assert.Equal(t, 1, metrics.Critical)
	assert.Equal(t, 1, metrics.HighPriority)
	assert.Equal(t, 1, metrics.MediumPriority)
	assert.Equal(t, 30, metrics.OldestOrderDays)
}

// TestCalculateMetrics_AverageTransit verifies the mean skips
// zero-transit orders and rounds.
func TestCalculateMetrics_AverageTransit(t *testing.T) {
	orders := []Order{
		{DaysInTransit: 4},
		{DaysInTransit: 5},
		{DaysInTransit: 0}, // never shipped, excluded from the mean
	}

	metrics := CalculateMetrics(orders)

	// (4+5)/2 = 4.5 rounds to 5 (to nearest, ties away from zero).
	assert.Equal(t, 5, metrics.AverageTransitDays)
}

// TestCalculateMetrics_NoTransitOrders verifies the mean is zero when
// no order has positive transit days.
func TestCalculateMetrics_NoTransitOrders(t *testing.T) {
	orders := []Order{{DaysInTransit: 0}, {DaysInTransit: 0}}

	metrics := CalculateMetrics(orders)

	assert.Equal(t, 0, metrics.AverageTransitDays)
}
