package models

import (
	"net/url"
	"strconv"
	"strings"
)

// AvailabilityQuery identifies one table-availability lookup.
type AvailabilityQuery struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"partySize"`
}

// Complete reports whether the query may be dispatched: date and time set
// and a party of at least one.
func (q AvailabilityQuery) Complete() bool {
	return strings.TrimSpace(q.Date) != "" && strings.TrimSpace(q.Time) != "" && q.PartySize >= 1
}

// Values encodes the query string for the availability endpoint.
func (q AvailabilityQuery) Values() url.Values {
	v := url.Values{}
	v.Set("date", strings.TrimSpace(q.Date))
	v.Set("time", strings.TrimSpace(q.Time))
	v.Set("partySize", strconv.Itoa(q.PartySize))
	return v
}

// TableCandidate is a table the restaurant can seat the party at.
type TableCandidate struct {
	ID          int64  `json:"id"`
	TableNumber int    `json:"tableNumber"`
	Capacity    int    `json:"capacity"`
	Zone        string `json:"zone"`
}

// ReservationRequest is the body sent to create a reservation. Numeric fields
// are already integers here.
type ReservationRequest struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"partySize"`
	TableNumber   int    `json:"tableNumber"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Reservation is the created booking.
type Reservation struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	PartySize   int    `json:"partySize"`
	TableNumber int    `json:"tableNumber"`
	Status      string `json:"status"`
}
