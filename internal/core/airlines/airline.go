package airlines

import "time"

// Region buckets airlines geographically for directory filtering.
const (
	RegionEurope       = "europe"
	RegionNorthAmerica = "north-america"
	RegionAsia         = "asia"
	RegionMiddleEast   = "middle-east"
	RegionSouthAmerica = "south-america"
	RegionAfrica       = "africa"
	RegionOceania      = "oceania"
)

// Membership roles within an airline.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RolePilot = "pilot"
)

// Invitation lifecycle states.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// Airline is a virtual airline in the community directory.
type Airline struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Code        string `json:"code" db:"code"` // IATA
	ICAO        string `json:"icao" db:"icao"`
	Logo        string `json:"logo,omitempty" db:"logo"`
	Description string `json:"description,omitempty" db:"description"`
	Tagline     string `json:"tagline,omitempty" db:"tagline"`

	Region  string `json:"region" db:"region"`
	Founded string `json:"founded,omitempty" db:"founded"`
	Website string `json:"website,omitempty" db:"website"`
	Discord string `json:"discord,omitempty" db:"discord"`

	// Cached counters maintained by the repositories.
	MemberCount int     `json:"members" db:"member_count"`
	FlightCount int     `json:"flights" db:"flight_count"`
	Rating      float64 `json:"rating" db:"rating"`

	Verified bool `json:"verified" db:"verified"`
	Active   bool `json:"active" db:"active"`

	Hubs  []string `json:"hubs"`  // ICAO codes
	Fleet []string `json:"fleet"` // aircraft type codes

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Membership links a pilot to an airline with a role and per-airline stats.
type Membership struct {
	ID        int64  `json:"id" db:"id"`
	PilotID   int64  `json:"pilotId" db:"pilot_id"`
	AirlineID int64  `json:"airlineId" db:"airline_id"`
	Role      string `json:"role" db:"role"`
	Rank      string `json:"rank" db:"rank"`
	Status    string `json:"status" db:"status"`

	Flights int     `json:"flights" db:"flights"`
	Hours   float64 `json:"hours" db:"hours"`

	JoinedAt     time.Time  `json:"joinedAt" db:"joined_at"`
	LastFlightAt *time.Time `json:"lastFlightAt,omitempty" db:"last_flight_at"`
}

// PilotAirline is a membership joined with its airline, shaped for the
// "my airlines" listing.
type PilotAirline struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Code    string   `json:"code"`
	ICAO    string   `json:"icao"`
	Logo    string   `json:"logo,omitempty"`
	Role    string   `json:"role"`
	Rank    string   `json:"rank"`
	Status  string   `json:"status"`
	Flights int      `json:"flights"`
	Hours   float64  `json:"hours"`
	Hubs    []string `json:"hubs"`
	IsOwner bool     `json:"isOwner"`

	JoinedAt     time.Time  `json:"joinDate"`
	LastFlightAt *time.Time `json:"lastFlight,omitempty"`
}

// Invitation is a pending offer for a pilot to join an airline.
type Invitation struct {
	ID          int64      `json:"id" db:"id"`
	AirlineID   int64      `json:"airlineId" db:"airline_id"`
	PilotID     int64      `json:"pilotId" db:"pilot_id"`
	Role        string     `json:"role" db:"role"`
	Status      string     `json:"status" db:"status"`
	AirlineName string     `json:"airlineName"`
	AirlineCode string     `json:"airlineCode"`
	InvitedBy   string     `json:"invitedBy"`
	CreatedAt   time.Time  `json:"invitedAt" db:"created_at"`
	RespondedAt *time.Time `json:"respondedAt,omitempty" db:"responded_at"`
}

// ListRequest filters and orders the airline directory.
type ListRequest struct {
	Search string
	Region string // "all" or a region constant
	Size   string // "all", "small" (<100), "medium" (100-499), "large" (>=500)
	SortBy string // "members", "flights", "rating", "newest"
}
