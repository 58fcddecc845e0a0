package stats

import "time"

// PilotEntry is one row of the pilot leaderboard. Hours combine platform
// flight time with VATSIM network pilot hours.
type PilotEntry struct {
	Rank        int     `json:"rank"`
	CID         string  `json:"cid"`
	Name        string  `json:"name"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Airline     string  `json:"airline"`
	AirlineName string  `json:"airlineName,omitempty"`
	Flights     int     `json:"flights"`
	Hours       float64 `json:"hours"`
	Distance    int     `json:"distance"`
	Country     string  `json:"country,omitempty"`
	Rating      string  `json:"rating,omitempty"`
	PilotRating string  `json:"pilotRating,omitempty"`
	VatsimHours float64 `json:"vatsimHours"`
}

// AirlineEntry is one row of the airline leaderboard.
type AirlineEntry struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	ICAO     string `json:"icao"`
	Logo     string `json:"logo,omitempty"`
	Flights  int    `json:"flights"`
	Pilots   int    `json:"pilots"`
	Region   string `json:"region"`
	Verified bool   `json:"verified"`
}

// Platform aggregates totals across the whole platform.
type Platform struct {
	TotalPilots      int `json:"totalPilots"`
	TotalAirlines    int `json:"totalAirlines"`
	TotalFlights     int `json:"totalFlights"`
	TotalHours       int `json:"totalHours"`
	TotalDistance    int `json:"totalDistance"`
	AvgFlightsPerDay int `json:"avgFlightsPerDay"`

	VatsimStats struct {
		TotalPilotHours int `json:"totalPilotHours"`
		TotalATCHours   int `json:"totalAtcHours"`
	} `json:"vatsimStats"`
}

// Activity is one entry in the recent-activity feed: a departure or arrival
// derived from the flights table.
type Activity struct {
	Type      string    `json:"type"` // "takeoff" or "landing"
	Pilot     string    `json:"pilot"`
	PilotCID  string    `json:"pilotCid"`
	Flight    string    `json:"flight"`
	Route     string    `json:"route"`
	Time      string    `json:"time"` // humanized, e.g. "5 min ago"
	Timestamp time.Time `json:"timestamp"`
	Aircraft  string    `json:"aircraft"`
	Airline   string    `json:"airline,omitempty"`
	Status    string    `json:"status"`
}
