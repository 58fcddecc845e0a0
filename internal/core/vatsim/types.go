package vatsim

// TokenResponse carries the provider's token grant. It is ephemeral: only the
// two token strings and a computed absolute expiry outlive the callback.
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	Scopes       []string `json:"scopes"`
}

// Identity is the raw authenticated identity as VATSIM Connect returns it
// from /api/user (inside a "data" envelope).
type Identity struct {
	CID      string `json:"cid"`
	Personal struct {
		NameFirst string `json:"name_first"`
		NameLast  string `json:"name_last"`
		NameFull  string `json:"name_full"`
		Email     string `json:"email"`
		Country   struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"country"`
	} `json:"personal"`
	Vatsim struct {
		Rating struct {
			ID    int    `json:"id"`
			Long  string `json:"long"`
			Short string `json:"short"`
		} `json:"rating"`
		PilotRating struct {
			ID    int    `json:"id"`
			Long  string `json:"long"`
			Short string `json:"short"`
		} `json:"pilotrating"`
		Division struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"division"`
		Region struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"region"`
		Subdivision struct {
			ID   *string `json:"id"`
			Name *string `json:"name"`
		} `json:"subdivision"`
	} `json:"vatsim"`
}

// ATCHours breaks down controller time by rating.
type ATCHours struct {
	Hours float64 `json:"hours"`
	S1    float64 `json:"s1,omitempty"`
	S2    float64 `json:"s2,omitempty"`
	S3    float64 `json:"s3,omitempty"`
	C1    float64 `json:"c1,omitempty"`
	C3    float64 `json:"c3,omitempty"`
	I1    float64 `json:"i1,omitempty"`
	I3    float64 `json:"i3,omitempty"`
	Sup   float64 `json:"sup,omitempty"`
	Adm   float64 `json:"adm,omitempty"`
}

// PilotHours breaks down pilot time by pilot rating.
type PilotHours struct {
	Hours float64 `json:"hours"`
	P1    float64 `json:"p1,omitempty"`
	P2    float64 `json:"p2,omitempty"`
	P3    float64 `json:"p3,omitempty"`
	P4    float64 `json:"p4,omitempty"`
}

// PilotStatistics is the response from /api/ratings/pilot/{cid}.
type PilotStatistics struct {
	ID               string      `json:"id"`
	Rating           int         `json:"rating"`
	PilotRating      int         `json:"pilotrating"`
	SuspDate         *string     `json:"susp_date"`
	RegDate          string      `json:"reg_date"`
	Region           string      `json:"region"`
	Division         string      `json:"division"`
	Subdivision      *string     `json:"subdivision"`
	LastRatingChange string      `json:"lastratingchange"`
	ATC              *ATCHours   `json:"atc,omitempty"`
	Pilot            *PilotHours `json:"pilot,omitempty"`
}
