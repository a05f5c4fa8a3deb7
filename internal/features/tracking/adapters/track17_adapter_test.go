package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orne-dashboard/internal/core/config"
	"orne-dashboard/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter builds an adapter pointed at a test server with a
// negligible inter-batch delay.
func newTestAdapter(baseURL string) *Track17Adapter {
	a := NewTrack17Adapter(config.TrackingConfig{
		APIKey:  "test-token",
		BaseURL: baseURL,
	})
	a.batchDelay = time.Millisecond
	return a
}

// TestRegister_Accepted verifies accepted numbers are reported as registered.
func TestRegister_Accepted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("17token"))

		var payload []registerItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload, 1)
		assert.Equal(t, "NM985773507BR", payload[0].Number)
		// Correios resolves to a concrete carrier hint.
		assert.Equal(t, 2151, payload[0].Carrier)

		fmt.Fprint(w, `{"code":0,"data":{"accepted":[{"number":"NM985773507BR"}],"rejected":[]}}`)
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	result := a.Register(context.Background(), []string{"NM985773507BR"})

	assert.Equal(t, []string{"NM985773507BR"}, result.Registered)
	assert.Empty(t, result.Failed)
}

// TestRegister_AlreadyRegistered verifies the idempotent-retry
// rejection code counts as success.
func TestRegister_AlreadyRegistered(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"accepted":[],"rejected":[
			{"number":"NM985773507BR","error":{"code":-18010011,"message":"already registered"}},
			{"number":"GBEFUWCT","error":{"code":-18010012,"message":"invalid"}}
		]}}`)
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	result := a.Register(context.Background(), []string{"NM985773507BR", "GBEFUWCT"})

	assert.Equal(t, []string{"NM985773507BR"}, result.Registered)
	assert.Equal(t, []string{"GBEFUWCT"}, result.Failed)
}

// TestRegister_Batching verifies 45 numbers are split into two calls of
// 40 and 5, with the configured pause between them.
func TestRegister_Batching(t *testing.T) {
	var batchSizes []int
	var callTimes []time.Time
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callTimes = append(callTimes, time.Now())
		var payload []registerItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		batchSizes = append(batchSizes, len(payload))
		fmt.Fprint(w, `{"code":0,"data":{"accepted":[],"rejected":[]}}`)
	}))
	defer ts.Close()

	numbers := make([]string, 45)
	for i := range numbers {
		numbers[i] = fmt.Sprintf("TEST%011d", i)
	}

	a := newTestAdapter(ts.URL)
	a.batchDelay = 30 * time.Millisecond
	a.Register(context.Background(), numbers)

	assert.Equal(t, []int{40, 5}, batchSizes)
	require.Len(t, callTimes, 2)
	assert.GreaterOrEqual(t, callTimes[1].Sub(callTimes[0]), a.batchDelay,
		"second batch should wait out the inter-batch pause")
}

// TestRegister_HTTPFailure verifies a failed batch marks its numbers
// failed without aborting.
func TestRegister_HTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	result := a.Register(context.Background(), []string{"NM985773507BR"})

	assert.Empty(t, result.Registered)
	assert.Equal(t, []string{"NM985773507BR"}, result.Failed)
}

// TestRegister_NoAPIKey verifies the degraded no-op path.
func TestRegister_NoAPIKey(t *testing.T) {
	a := NewTrack17Adapter(config.TrackingConfig{BaseURL: "http://unused"})

	result := a.Register(context.Background(), []string{"NM985773507BR"})

	assert.Empty(t, result.Registered)
	assert.Equal(t, []string{"NM985773507BR"}, result.Failed)
}

// TestGetStatuses_MapsEvents verifies status parsing, event flattening
// and newest-first ordering.
func TestGetStatuses_MapsEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gettrackinfo", r.URL.Path)
		fmt.Fprint(w, `{"code":0,"data":{"accepted":[{
			"number":"NM985773507BR",
			"track_info":{
				"latest_status":{"status":"InTransit"},
				"latest_event":{"time_iso":"2025-08-20T14:30:00-03:00"},
				"tracking":{"providers":[{"events":[
					{"time_iso":"2025-08-18T09:15:00-03:00","description":"Objeto postado","location":"Sao Paulo","sub_status":"InTransit_PickedUp"},
					{"time_iso":"2025-08-20T14:30:00-03:00","description":"Objeto em transito","location":"Curitiba","sub_status":"InTransit_Other"}
				]}]}
			}
		}],"rejected":[]}}`)
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	results := a.GetStatuses(context.Background(), []string{"NM985773507BR"})

	require.Contains(t, results, "NM985773507BR")
	info := results["NM985773507BR"]

	assert.Equal(t, domain.StatusInTransit, info.Status)
	require.Len(t, info.Events, 2)
	assert.Equal(t, "2025-08-20", info.Events[0].Date)
	assert.Equal(t, "14:30", info.Events[0].Time)
	assert.Equal(t, "Objeto em transito", info.Events[0].Description)
	assert.Equal(t, "2025-08-18", info.Events[1].Date)

	require.NotNil(t, info.LastUpdate)
	assert.Equal(t, 20, info.LastUpdate.Day())
}

// TestGetStatuses_UnknownStatus verifies out-of-vocabulary statuses
// fall back to Unknown instead of breaking.
func TestGetStatuses_UnknownStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"accepted":[{
			"number":"GBEFUWCT",
			"track_info":{"latest_status":{"status":"SomethingNew"},"latest_event":{},"tracking":{"providers":[]}}
		}],"rejected":[]}}`)
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	results := a.GetStatuses(context.Background(), []string{"GBEFUWCT"})

	require.Contains(t, results, "GBEFUWCT")
	assert.Equal(t, domain.StatusUnknown, results["GBEFUWCT"].Status)
	assert.Nil(t, results["GBEFUWCT"].LastUpdate)
}

// TestGetStatuses_MissingNumbers verifies unaccepted numbers are simply absent.
func TestGetStatuses_MissingNumbers(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"accepted":[],"rejected":[{"number":"GBEFUWCT","error":{"code":-18019901,"message":"not registered"}}]}}`)
	}))
	defer ts.Close()

	a := newTestAdapter(ts.URL)
	results := a.GetStatuses(context.Background(), []string{"GBEFUWCT"})

	assert.Empty(t, results)
}

// TestGetStatuses_NoAPIKey verifies the fetch no-op without credentials.
func TestGetStatuses_NoAPIKey(t *testing.T) {
	a := NewTrack17Adapter(config.TrackingConfig{BaseURL: "http://unused"})

	results := a.GetStatuses(context.Background(), []string{"NM985773507BR"})

	assert.Empty(t, results)
}

// TestSplitBatches verifies chunking edge cases.
func TestSplitBatches(t *testing.T) {
	assert.Nil(t, splitBatches(nil))

	batches := splitBatches(make([]string, 40))
	assert.Len(t, batches, 1)

	batches = splitBatches(make([]string, 41))
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 40)
	assert.Len(t, batches[1], 1)
}
