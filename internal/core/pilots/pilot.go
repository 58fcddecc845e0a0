package pilots

import (
	"time"

	"vahub/internal/core/vatsim"
)

// Pilot is a VATSIM member tracked on the platform, keyed by CID. Identity
// fields mirror what the provider asserts at login; everything else is local.
type Pilot struct {
	ID          int64  `json:"id" db:"id"`
	CID         string `json:"cid" db:"cid"`
	FirstName   string `json:"firstName" db:"first_name"`
	LastName    string `json:"lastName" db:"last_name"`
	Email       string `json:"email" db:"email"`
	Country     string `json:"country" db:"country"`
	Rating      string `json:"rating" db:"rating"`
	PilotRating string `json:"pilotRating" db:"pilot_rating"`
	Division    string `json:"division" db:"division"`

	DisplayName string `json:"displayName" db:"display_name"`
	Bio         string `json:"bio" db:"bio"`
	HomeAirport string `json:"homeAirport" db:"home_airport"`
	Timezone    string `json:"timezone" db:"timezone"`

	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`

	// Cached totals, recomputed from the flights table.
	TotalFlights  int     `json:"totalFlights" db:"total_flights"`
	TotalHours    float64 `json:"totalHours" db:"total_hours"`
	TotalDistance int     `json:"totalDistance" db:"total_distance"`

	// Statistics mirrored from the VATSIM ratings API.
	VatsimStats          *StoredStats `json:"vatsimStats,omitempty"`
	VatsimStatsUpdatedAt *time.Time   `json:"vatsimStatsUpdatedAt,omitempty" db:"vatsim_stats_updated_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Name returns the pilot's preferred display name.
func (p *Pilot) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.FirstName + " " + p.LastName
}

// NotificationSettings controls which notifications a pilot receives.
type NotificationSettings struct {
	Email           bool `json:"email" db:"notify_email"`
	Browser         bool `json:"browser" db:"notify_browser"`
	FlightReminders bool `json:"flightReminders" db:"notify_flight_reminders"`
	EventUpdates    bool `json:"eventUpdates" db:"notify_event_updates"`
	WeeklyDigest    bool `json:"weeklyDigest" db:"notify_weekly_digest"`
}

// PrivacySettings controls what other members may see on a pilot's profile.
type PrivacySettings struct {
	ShowEmail      bool `json:"showEmail" db:"show_email"`
	ShowFlights    bool `json:"showFlights" db:"show_flights"`
	ShowStatistics bool `json:"showStatistics" db:"show_statistics"`
	ShowAirlines   bool `json:"showAirlines" db:"show_airlines"`
}

// StoredStats is the slice of ratings-API statistics persisted on the pilot
// row (JSONB column).
type StoredStats struct {
	ATC              *vatsim.ATCHours   `json:"atc,omitempty"`
	Pilot            *vatsim.PilotHours `json:"pilot,omitempty"`
	RegDate          string             `json:"regDate,omitempty"`
	LastRatingChange string             `json:"lastRatingChange,omitempty"`
}

// UpdateProfileRequest is a partial profile update. Nil pointers leave the
// corresponding field untouched; this mirrors PATCH-style semantics on a PUT
// endpoint.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	HomeAirport *string `json:"homeAirport"`
	Timezone    *string `json:"timezone"`

	Notifications *NotificationSettingsUpdate `json:"notifications"`
	Privacy       *PrivacySettingsUpdate      `json:"privacy"`
}

// NotificationSettingsUpdate is the partial form of NotificationSettings.
type NotificationSettingsUpdate struct {
	Email           *bool `json:"email"`
	Browser         *bool `json:"browser"`
	FlightReminders *bool `json:"flightReminders"`
	EventUpdates    *bool `json:"eventUpdates"`
	WeeklyDigest    *bool `json:"weeklyDigest"`
}

// PrivacySettingsUpdate is the partial form of PrivacySettings.
type PrivacySettingsUpdate struct {
	ShowEmail      *bool `json:"showEmail"`
	ShowFlights    *bool `json:"showFlights"`
	ShowStatistics *bool `json:"showStatistics"`
	ShowAirlines   *bool `json:"showAirlines"`
}

// PublicProfile is a pilot profile filtered through the owner's privacy
// settings for a given viewer.
type PublicProfile struct {
	CID         string    `json:"cid"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DisplayName string    `json:"displayName,omitempty"`
	Country     string    `json:"country,omitempty"`
	Rating      string    `json:"rating,omitempty"`
	PilotRating string    `json:"pilotRating,omitempty"`
	Division    string    `json:"division,omitempty"`
	HomeAirport string    `json:"homeAirport,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// Present only when privacy settings (or profile ownership) allow.
	Email                *string      `json:"email,omitempty"`
	TotalFlights         *int         `json:"totalFlights,omitempty"`
	TotalHours           *float64     `json:"totalHours,omitempty"`
	TotalDistance        *int         `json:"totalDistance,omitempty"`
	VatsimStats          *StoredStats `json:"vatsimStats,omitempty"`
	VatsimStatsUpdatedAt *time.Time   `json:"vatsimStatsUpdatedAt,omitempty"`
}
