package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"orne-dashboard/internal/core/cache"
	"orne-dashboard/internal/core/calendar"
	"orne-dashboard/internal/core/logger"
	"orne-dashboard/internal/features/orders/domain"
	"orne-dashboard/internal/features/orders/ports"
	trackingdomain "orne-dashboard/internal/features/tracking/domain"
	trackingports "orne-dashboard/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// snapshotCacheKey is where the latest dashboard snapshot lives in the cache.
const snapshotCacheKey = "dashboard_snapshot"

// ErrOrderSource is returned when the store cannot be queried. Without
// order data there is nothing to refresh, so the cycle aborts.
var ErrOrderSource = errors.New("failed to fetch orders from store")

// deliveredPhrases mark an order as delivered even when the aggregator
// status lags behind the carrier's event feed.
var deliveredPhrases = []string{
	"delivered",
	"entregue",
	"entrega realizada",
	"objeto entregue",
}

// DashboardService runs the refresh cycle: fetch in-transit orders,
// register and query their tracking numbers, enrich, filter delivered
// shipments out, prioritize and summarize.
type DashboardService struct {
	// orders is the store-side order source.
	orders ports.OrderProvider
	// tracker is the parcel-tracking aggregator.
	tracker trackingports.TrackingProvider
	// snapshots caches the latest snapshot as a refresh debounce. May
	// be nil, in which case every request runs a full refresh.
	snapshots cache.Cache
	// calendar resolves business days for the priority rules.
	calendar *calendar.Calendar
	// snapshotTTL bounds how stale a cached snapshot may be.
	snapshotTTL time.Duration
	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	orders ports.OrderProvider,
	tracker trackingports.TrackingProvider,
	snapshots cache.Cache,
	cal *calendar.Calendar,
	snapshotTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		orders:      orders,
		tracker:     tracker,
		snapshots:   snapshots,
		calendar:    cal,
		snapshotTTL: snapshotTTL,
		now:         time.Now,
	}
}

// GetDashboard returns the current snapshot, serving the cached one
// when it is still fresh. forceRefresh bypasses the cache.
func (s *DashboardService) GetDashboard(ctx context.Context, forceRefresh bool) (*domain.DashboardSnapshot, error) {
	if !forceRefresh {
		if snapshot := s.cachedSnapshot(ctx); snapshot != nil {
			return snapshot, nil
		}
	}

	snapshot, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}

	s.storeSnapshot(ctx, snapshot)
	return snapshot, nil
}

// refresh runs one full cycle against both upstreams.
func (s *DashboardService) refresh(ctx context.Context) (*domain.DashboardSnapshot, error) {
	now := s.now()

	orders, err := s.orders.ListInTransit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderSource, err)
	}

	// Nothing in transit: skip the tracking round trips entirely.
	if len(orders) == 0 {
		return &domain.DashboardSnapshot{
			Orders:     []domain.Order{},
			Metrics:    domain.CalculateMetrics(nil),
			LastUpdate: now,
		}, nil
	}

	numbers := trackingNumbers(orders)

	registration := s.tracker.Register(ctx, numbers)
	if len(registration.Failed) > 0 {
		logger.Get().Warn("Some tracking numbers could not be registered",
			zap.Int("failed", len(registration.Failed)),
			zap.Strings("numbers", registration.Failed),
		)
	}

	statuses := s.tracker.GetStatuses(ctx, numbers)

	enriched := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		order = s.enrich(order, statuses, now)

		if isDelivered(order) {
			logger.Get().Info("Removing delivered order from dashboard",
				zap.String("order", order.OrderName),
				zap.String("tracking_number", order.TrackingNumber),
				zap.String("status", string(order.TrackingStatus)),
			)
			continue
		}

		enriched = append(enriched, order)
	}

	sortByUrgency(enriched)

	snapshot := &domain.DashboardSnapshot{
		Orders:     enriched,
		Metrics:    domain.CalculateMetrics(enriched),
		LastUpdate: now,
	}

	logger.Get().Info("Dashboard refreshed",
		zap.Int("in_transit", len(enriched)),
		zap.Int("delivered_removed", len(orders)-len(enriched)),
		zap.Int("with_problems", snapshot.Metrics.WithProblems),
	)

	return snapshot, nil
}

// enrich fills the derived block of one order from the calendar and the
// aggregator's answer for its tracking number.
func (s *DashboardService) enrich(order domain.Order, statuses map[string]trackingdomain.TrackingInfo, now time.Time) domain.Order {
	order.DaysSinceOrder = calendar.DaysBetween(order.CreatedAt, now)
	order.BusinessDaysSinceOrder = s.calendar.BusinessDaysBetween(order.CreatedAt, now)
	if order.ShippedAt != nil {
		order.DaysInTransit = calendar.DaysBetween(*order.ShippedAt, now)
	}

	if info, ok := statuses[order.TrackingNumber]; ok {
		order.TrackingStatus = info.Status
		order.TrackingEvents = info.Events
		order.LastTrackingUpdate = info.LastUpdate
	}

	check := trackingdomain.CheckAbnormal(order.TrackingStatus, order.TrackingEvents)
	order.HasAbnormalStatus = check.HasAbnormal
	order.AbnormalReason = check.Reason

	order.Priority = domain.DeterminePriority(order.BusinessDaysSinceOrder, order.HasAbnormalStatus)

	return order
}

// isDelivered reports whether the order already reached the customer,
// by status or by any event wording.
func isDelivered(order domain.Order) bool {
	if order.TrackingStatus == trackingdomain.StatusDelivered {
		return true
	}
	for _, event := range order.TrackingEvents {
		description := strings.ToLower(event.Description)
		for _, phrase := range deliveredPhrases {
			if strings.Contains(description, phrase) {
				return true
			}
		}
	}
	return false
}

// sortByUrgency orders the collection by priority tier, then by how
// long each order has been waiting.
func sortByUrgency(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority != orders[j].Priority {
			return orders[i].Priority.Rank() < orders[j].Priority.Rank()
		}
		return orders[i].BusinessDaysSinceOrder > orders[j].BusinessDaysSinceOrder
	})
}

// trackingNumbers collects the distinct tracking numbers of the batch.
func trackingNumbers(orders []domain.Order) []string {
	seen := make(map[string]bool, len(orders))
	numbers := make([]string, 0, len(orders))
	for _, order := range orders {
		if order.TrackingNumber == "" || seen[order.TrackingNumber] {
			continue
		}
		seen[order.TrackingNumber] = true
		numbers = append(numbers, order.TrackingNumber)
	}
	return numbers
}

// cachedSnapshot returns the cached snapshot, or nil on miss, decode
// failure or when caching is disabled.
func (s *DashboardService) cachedSnapshot(ctx context.Context) *domain.DashboardSnapshot {
	if s.snapshots == nil {
		return nil
	}

	raw, err := s.snapshots.Get(ctx, snapshotCacheKey)
	if err != nil {
		return nil
	}

	var snapshot domain.DashboardSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Get().Warn("Discarding unreadable cached snapshot", zap.Error(err))
		return nil
	}

	return &snapshot
}

// storeSnapshot caches the snapshot. Failures are logged and swallowed:
// the snapshot in hand is still valid.
func (s *DashboardService) storeSnapshot(ctx context.Context, snapshot *domain.DashboardSnapshot) {
	if s.snapshots == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		logger.Get().Warn("Failed to encode snapshot for caching", zap.Error(err))
		return
	}

	if err := s.snapshots.Set(ctx, snapshotCacheKey, raw, s.snapshotTTL); err != nil {
		logger.Get().Warn("Failed to cache snapshot", zap.Error(err))
	}
}
