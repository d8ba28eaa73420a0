package model

import "time"

// Registration is the registration form: credentials plus the profile to store.
type Registration struct {
	Email    string
	Password string
	Profile  Profile
}

type Credentials struct {
	Email    string
	Password string
}

// Profile registration record kept in the document store, keyed by account.
type Profile struct {
	ID               string
	AccountID        string
	Email            string
	Sotu             string
	Zip              string
	Plate            string
	HomeSize         string
	ConsentStore     bool
	ConsentMarketing bool
	ConsentSale      bool
	Preferences      *PreferenceSelection
	CreatedAt        time.Time
}

// Identity is what the identity provider hands back after sign-up or sign-in.
type Identity struct {
	AccountID    string
	Email        string
	Token        string
	RefreshToken string
	ExpiresIn    time.Duration
}

type LoginResult struct {
	Identity Identity
	Profile  *Profile
}

// LeadEvent is published after a successful registration.
type LeadEvent struct {
	ProfileID        string    `json:"profileId"`
	AccountID        string    `json:"accountId"`
	Zip              string    `json:"zip"`
	HomeSize         string    `json:"homeSize"`
	ConsentMarketing bool      `json:"consentMarketing"`
	ConsentSale      bool      `json:"consentSale"`
	CreatedAt        time.Time `json:"createdAt"`
}
