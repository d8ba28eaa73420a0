package spin

// SpinRequest current slider values; an empty string means not chosen
type SpinRequest struct {
	Auto   string `json:"auto"`
	Home   string `json:"home"`
	Travel string `json:"travel"`
}

type Insurer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type SpinResponse struct {
	Success   bool      `json:"success"`
	Picks     []Insurer `json:"picks"` // auto, home, travel
	Lines     []string  `json:"lines"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Advice    string    `json:"advice"`
	Hint      string    `json:"hint,omitempty"`
	PlayCount int       `json:"playCount"`
	Remaining int       `json:"remaining"`
	Unlimited bool      `json:"unlimited"`
}

type StatusResponse struct {
	State     string `json:"state"`
	Permitted bool   `json:"permitted"`
	PlayCount int    `json:"playCount"`
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
	Message   string `json:"message"`
}

// BlockedResponse is sent when the play gate refuses a spin
type BlockedResponse struct {
	Error string `json:"error"`
	State string `json:"state"`
}

type CatalogResponse struct {
	Insurers []Insurer `json:"insurers"`
}
