package domain

import "time"

// TrackingStatus represents the aggregator's latest-status code for a
// shipment. The set mirrors the 17TRACK v2.2 status vocabulary.
type TrackingStatus string

const (
	// StatusNotFound indicates the carrier has no record of the number.
	StatusNotFound TrackingStatus = "NotFound"
	// StatusInfoReceived indicates the carrier received shipment info only.
	StatusInfoReceived TrackingStatus = "InfoReceived"
	// StatusInTransit indicates the parcel is moving through the network.
	StatusInTransit TrackingStatus = "InTransit"
	// StatusOutForDelivery indicates the parcel is on its final leg.
	StatusOutForDelivery TrackingStatus = "OutForDelivery"
	// StatusDelivered indicates the parcel reached the customer.
	StatusDelivered TrackingStatus = "Delivered"
	// StatusAvailableForPickup indicates the customer must collect the parcel.
	StatusAvailableForPickup TrackingStatus = "AvailableForPickup"
	// StatusException indicates a delivery problem reported by the carrier.
	StatusException TrackingStatus = "Exception"
	// StatusExpired indicates tracking lapsed without a delivery record.
	StatusExpired TrackingStatus = "Expired"
	// StatusUnknown is the fallback for aggregator values outside the
	// known vocabulary, so unexpected responses never break classification.
	StatusUnknown TrackingStatus = "Unknown"
)

var knownStatuses = map[TrackingStatus]bool{
	StatusNotFound:           true,
	StatusInfoReceived:       true,
	StatusInTransit:          true,
	StatusOutForDelivery:     true,
	StatusDelivered:          true,
	StatusAvailableForPickup: true,
	StatusException:          true,
	StatusExpired:            true,
}

// ParseStatus maps a raw aggregator status string onto the closed
// status set, falling back to StatusUnknown for anything else.
func ParseStatus(raw string) TrackingStatus {
	s := TrackingStatus(raw)
	if knownStatuses[s] {
		return s
	}
	return StatusUnknown
}

// TrackingEvent represents a single parcel-movement record.
type TrackingEvent struct {
	// Date is the event date in YYYY-MM-DD form.
	Date string `json:"date"`
	// Time is the event time in HH:MM form.
	Time string `json:"time"`
	// Description is the carrier's free-text event description.
	Description string `json:"description"`
	// Location is where the event occurred, when the carrier reports it.
	Location string `json:"location"`
	// Status is the carrier sub-status code, informational only.
	Status string `json:"status"`
}

// TrackingInfo holds the aggregator's current view of one tracking number.
type TrackingInfo struct {
	// Status is the parsed latest status.
	Status TrackingStatus `json:"status"`
	// Events lists movement records, most recent first.
	Events []TrackingEvent `json:"events"`
	// LastUpdate is the timestamp of the latest carrier event.
	LastUpdate *time.Time `json:"last_update"`
}

// RegistrationResult reconciles one batch-registration pass.
type RegistrationResult struct {
	// Registered lists numbers accepted by the aggregator, including
	// numbers it already knew about.
	Registered []string `json:"registered"`
	// Failed lists numbers the aggregator rejected or that never
	// reached it.
	Failed []string `json:"failed"`
}
