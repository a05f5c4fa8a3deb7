package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"orne-dashboard/internal/core/config"
	"orne-dashboard/internal/core/httpclient"
	"orne-dashboard/internal/core/logger"
	"orne-dashboard/internal/features/tracking/domain"

	"go.uber.org/zap"
)

const (
	// maxBatchSize is the aggregator's per-call limit for both
	// register and gettrackinfo.
	maxBatchSize = 40

	// errAlreadyRegistered is the aggregator's rejection code for a
	// number it already monitors. Idempotent retry, not a failure.
	errAlreadyRegistered = -18010011
)

// Track17Adapter implements the TrackingProvider port against the
// 17TRACK v2.2 API. Without an API key every call degrades to a no-op
// so a refresh cycle still completes with awaiting tracking data.
type Track17Adapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the aggregator connection details.
	config config.TrackingConfig
	// batchDelay is the pause between consecutive batch calls, kept as
	// a field so tests do not sleep for real.
	batchDelay time.Duration
	logger     *zap.Logger
}

// NewTrack17Adapter creates a new Track17Adapter.
func NewTrack17Adapter(cfg config.TrackingConfig) *Track17Adapter {
	return &Track17Adapter{
		client:     httpclient.NewClient(15 * time.Second),
		config:     cfg,
		batchDelay: 300 * time.Millisecond,
		logger:     logger.Get(),
	}
}

// registerItem is one entry of the register payload. The carrier hint
// is attached only when the classifier resolved a concrete code, so
// the aggregator can still auto-detect the rest.
type registerItem struct {
	Number  string `json:"number"`
	Carrier int    `json:"carrier,omitempty"`
}

// track17Envelope is the common response wrapper.
type track17Envelope struct {
	Code int             `json:"code"`
	Data track17DataNode `json:"data"`
}

type track17DataNode struct {
	Accepted []track17Accepted `json:"accepted"`
	Rejected []track17Rejected `json:"rejected"`
}

type track17Accepted struct {
	Number    string         `json:"number"`
	Carrier   int            `json:"carrier"`
	TrackInfo *track17Detail `json:"track_info"`
}

type track17Rejected struct {
	Number string `json:"number"`
	Error  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type track17Detail struct {
	LatestStatus struct {
		Status    string `json:"status"`
		SubStatus string `json:"sub_status"`
	} `json:"latest_status"`
	LatestEvent struct {
		TimeISO string `json:"time_iso"`
	} `json:"latest_event"`
	Tracking struct {
		Providers []struct {
			Events []track17Event `json:"events"`
		} `json:"providers"`
	} `json:"tracking"`
}

type track17Event struct {
	TimeISO     string `json:"time_iso"`
	Description string `json:"description"`
	Location    string `json:"location"`
	SubStatus   string `json:"sub_status"`
}

// Register submits the numbers in batches of 40, pausing between
// batches to respect the aggregator's rate limits. A number rejected
// as already-registered counts as registered.
func (a *Track17Adapter) Register(ctx context.Context, trackingNumbers []string) domain.RegistrationResult {
	result := domain.RegistrationResult{}

	if a.config.APIKey == "" {
		a.logger.Warn("Tracking API key not configured, skipping registration")
		result.Failed = append(result.Failed, trackingNumbers...)
		return result
	}

	for i, batch := range splitBatches(trackingNumbers) {
		if i > 0 {
			a.pause(ctx)
		}

		payload := make([]registerItem, 0, len(batch))
		for _, number := range batch {
			item := registerItem{Number: number}
			if carrier := domain.DetectCarrier(number); carrier.Code > 0 {
				item.Carrier = carrier.Code
			}
			payload = append(payload, item)
		}

		a.logger.Debug("Registering tracking batch", zap.Int("size", len(batch)))

		envelope, err := a.post(ctx, "/register", payload)
		if err != nil {
			a.logger.Warn("Tracking registration batch failed", zap.Error(err))
			result.Failed = append(result.Failed, batch...)
			continue
		}

		for _, item := range envelope.Data.Accepted {
			result.Registered = append(result.Registered, item.Number)
		}
		for _, item := range envelope.Data.Rejected {
			if item.Error.Code == errAlreadyRegistered {
				result.Registered = append(result.Registered, item.Number)
				continue
			}
			a.logger.Warn("Tracking number rejected",
				zap.String("number", item.Number),
				zap.Int("error_code", item.Error.Code),
				zap.String("error_message", item.Error.Message),
			)
			result.Failed = append(result.Failed, item.Number)
		}
	}

	a.logger.Info("Tracking registration finished",
		zap.Int("registered", len(result.Registered)),
		zap.Int("failed", len(result.Failed)),
	)
	return result
}

// GetStatuses fetches current status and event history for the given
// numbers, using the same batching scheme as Register. Fetch failures
// only leave the affected numbers out of the result.
func (a *Track17Adapter) GetStatuses(ctx context.Context, trackingNumbers []string) map[string]domain.TrackingInfo {
	results := make(map[string]domain.TrackingInfo)

	if a.config.APIKey == "" {
		return results
	}

	for i, batch := range splitBatches(trackingNumbers) {
		if i > 0 {
			a.pause(ctx)
		}

		payload := make([]registerItem, 0, len(batch))
		for _, number := range batch {
			payload = append(payload, registerItem{Number: number})
		}

		envelope, err := a.post(ctx, "/gettrackinfo", payload)
		if err != nil {
			a.logger.Warn("Tracking status batch failed", zap.Error(err))
			continue
		}

		for _, item := range envelope.Data.Accepted {
			if item.TrackInfo == nil {
				continue
			}
			results[item.Number] = mapTrackInfo(item.TrackInfo)
		}
	}

	return results
}

// post executes one aggregator call and decodes the envelope.
func (a *Track17Adapter) post(ctx context.Context, path string, payload interface{}) (*track17Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("17token", a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator API returned status: %d", resp.StatusCode)
	}

	var envelope track17Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &envelope, nil
}

// pause sleeps between batches, waking early on context cancellation.
func (a *Track17Adapter) pause(ctx context.Context) {
	timer := time.NewTimer(a.batchDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// splitBatches chunks the numbers into aggregator-sized batches.
func splitBatches(numbers []string) [][]string {
	var batches [][]string
	for start := 0; start < len(numbers); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(numbers) {
			end = len(numbers)
		}
		batches = append(batches, numbers[start:end])
	}
	return batches
}

// mapTrackInfo flattens the aggregator detail into the domain shape:
// events across all providers, date/time split from time_iso, ordered
// most recent first.
func mapTrackInfo(detail *track17Detail) domain.TrackingInfo {
	info := domain.TrackingInfo{
		Status: domain.ParseStatus(detail.LatestStatus.Status),
		Events: make([]domain.TrackingEvent, 0),
	}

	for _, provider := range detail.Tracking.Providers {
		for _, event := range provider.Events {
			info.Events = append(info.Events, domain.TrackingEvent{
				Date:        splitDate(event.TimeISO),
				Time:        splitTime(event.TimeISO),
				Description: event.Description,
				Location:    event.Location,
				Status:      event.SubStatus,
			})
		}
	}

	sort.SliceStable(info.Events, func(i, j int) bool {
		return eventTimestamp(info.Events[i]) > eventTimestamp(info.Events[j])
	})

	if detail.LatestEvent.TimeISO != "" {
		if parsed, err := time.Parse(time.RFC3339, detail.LatestEvent.TimeISO); err == nil {
			info.LastUpdate = &parsed
		}
	}

	return info
}

// eventTimestamp reconstructs a sortable timestamp from the split
// date/time fields. Lexicographic order matches chronological order
// for the YYYY-MM-DDTHH:MM form.
func eventTimestamp(event domain.TrackingEvent) string {
	t := event.Time
	if t == "" {
		t = "00:00"
	}
	return event.Date + "T" + t
}

func splitDate(timeISO string) string {
	if idx := strings.Index(timeISO, "T"); idx >= 0 {
		return timeISO[:idx]
	}
	return timeISO
}

func splitTime(timeISO string) string {
	idx := strings.Index(timeISO, "T")
	if idx < 0 || len(timeISO) < idx+6 {
		return ""
	}
	return timeISO[idx+1 : idx+6]
}
