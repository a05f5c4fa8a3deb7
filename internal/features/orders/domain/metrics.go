package domain

import "math"

// CalculateMetrics reduces the final order collection into the
// dashboard counters. Pure; the input is not modified.
func CalculateMetrics(orders []Order) DashboardMetrics {
	metrics := DashboardMetrics{
		TotalInTransit: len(orders),
	}

	transitSum := 0
	transitCount := 0

	for _, order := range orders {
		if order.HasAbnormalStatus {
			metrics.WithProblems++
		}

		switch order.Priority {
		case PriorityCritical:
			metrics.Critical++
		case PriorityHigh:
			metrics.HighPriority++
		case PriorityMedium:
			metrics.MediumPriority++
		}

		if order.DaysInTransit > 0 {
			transitSum += order.DaysInTransit
			transitCount++
		}

		if order.DaysSinceOrder > metrics.OldestOrderDays {
			metrics.OldestOrderDays = order.DaysSinceOrder
		}
	}

	if transitCount > 0 {
		metrics.AverageTransitDays = int(math.Round(float64(transitSum) / float64(transitCount)))
	}

	return metrics
}
