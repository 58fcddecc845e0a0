package events

import "time"

// Event types.
const (
	TypeGroupFlight = "group-flight"
	TypeFlyIn       = "fly-in"
	TypeTour        = "tour"
	TypeCompetition = "competition"
)

// Event is a community event hosted by an airline: group flights, fly-ins,
// tours and competitions.
type Event struct {
	ID        int64 `json:"id" db:"id"`
	AirlineID int64 `json:"airlineId" db:"airline_id"`

	Title            string `json:"title" db:"title"`
	Description      string `json:"description,omitempty" db:"description"`
	ShortDescription string `json:"shortDescription,omitempty" db:"short_description"`
	EventType        string `json:"eventType" db:"event_type"`

	StartDate time.Time  `json:"startDate" db:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" db:"end_date"`
	Duration  int        `json:"duration,omitempty" db:"duration"` // minutes

	DepartureICAO    string   `json:"departureIcao,omitempty" db:"departure_icao"`
	ArrivalICAO      string   `json:"arrivalIcao,omitempty" db:"arrival_icao"`
	RouteDescription string   `json:"routeDescription,omitempty" db:"route_description"`
	AllowedAircraft  []string `json:"allowedAircraft,omitempty"`

	MaxParticipants     int    `json:"maxParticipants,omitempty" db:"max_participants"`
	CurrentParticipants int    `json:"currentParticipants" db:"current_participants"`
	ImageURL            string `json:"imageUrl,omitempty" db:"image_url"`

	Featured bool `json:"featured" db:"featured"`

	// Organizer resolution prefers the airline name; falls back to the
	// creating pilot.
	AirlineName string `json:"airlineName,omitempty"`
	AirlineCode string `json:"airlineCode,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Organizer returns the display name for who is hosting the event.
func (e *Event) Organizer() string {
	if e.AirlineName != "" {
		return e.AirlineName
	}
	if e.CreatedBy != "" {
		return e.CreatedBy
	}
	return "VATSIM Community"
}

// Route returns a human-readable route summary for listings.
func (e *Event) Route() string {
	switch {
	case e.DepartureICAO != "" && e.ArrivalICAO != "":
		return e.DepartureICAO + " - " + e.ArrivalICAO
	case e.RouteDescription != "":
		return e.RouteDescription
	case e.DepartureICAO != "":
		return e.DepartureICAO + " Hub"
	default:
		return "Various"
	}
}

// ListRequest filters the event listing. Only active, non-cancelled events
// are ever returned.
type ListRequest struct {
	Category string // "all" or an event type constant
	Featured bool
}
