package auth

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Sotu             string `json:"sotu"`
	Zip              string `json:"zip"`
	Plate            string `json:"plate"`
	HomeSize         string `json:"homeSize"`
	ConsentStore     bool   `json:"consentStore"`
	ConsentMarketing bool   `json:"consentMarketing"`
	ConsentSale      bool   `json:"consentSale"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	User    LoginUser `json:"user"`
}

type LoginUser struct {
	Email        string    `json:"email"`
	UserID       string    `json:"userId"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    string    `json:"expiresIn"` // seconds
	UserData     *UserData `json:"userData"`
}

// UserData is null when the account has no stored profile
type UserData struct {
	ID          string       `json:"id"`
	Sotu        string       `json:"sotu"`
	Zip         string       `json:"zip"`
	Plate       string       `json:"plate"`
	HomeSize    string       `json:"homeSize"`
	Preferences *Preferences `json:"preferences"`
}

type Preferences struct {
	Auto   string `json:"auto"`
	Home   string `json:"home"`
	Travel string `json:"travel"`
}

type UpdatePreferencesRequest struct {
	UserID      string       `json:"userId"`
	Preferences *Preferences `json:"preferences"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
