package ports

import (
	"context"

	"orne-dashboard/internal/features/tracking/domain"
)

// TrackingProvider defines the interface for the tracking aggregator.
// This is a Secondary Port (Driven Port).
type TrackingProvider interface {
	// Register submits tracking numbers for monitoring. Registration is
	// metered upstream; numbers the aggregator already knows count as
	// registered. Per-number failures are reported in the result, never
	// as an error.
	Register(ctx context.Context, trackingNumbers []string) domain.RegistrationResult

	// GetStatuses fetches the current status and event history for the
	// given numbers. Numbers the aggregator does not know are simply
	// absent from the result map.
	GetStatuses(ctx context.Context, trackingNumbers []string) map[string]domain.TrackingInfo
}
