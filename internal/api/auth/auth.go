package auth

import (
	"errors"
	"net/http"

	dto "tosipeli/internal/api/dto/auth"
	"tosipeli/internal/converter"
	"tosipeli/internal/middleware"
	"tosipeli/internal/model"
	"tosipeli/internal/service"
	"tosipeli/pkg/req"
	"tosipeli/pkg/resp"

	"github.com/rs/zerolog"
)

// User-facing texts
const (
	msgMissingFields      = "Missing required fields"
	msgRegistrationSaved  = "Registration saved successfully"
	msgSaveFailed         = "Failed to save registration"
	msgEmailExists        = "Sähköpostiosoite on jo rekisteröity"
	msgCreateUserFailed   = "Käyttäjän luonti epäonnistui"
	msgCredentialsMissing = "Email and password required"
	msgLoginFailed        = "Kirjautuminen epäonnistui"
	msgUnauthorized       = "Unauthorized"
	msgProfileNotFound    = "User document not found"
	msgPrefsUpdated       = "Preferences updated successfully"
	msgPrefsFailed        = "Failed to update preferences"
)

var loginMessages = map[model.AuthReason]string{
	model.ReasonEmailNotFound:      "Sähköpostiosoitetta ei löydy. Rekisteröidy ensin.",
	model.ReasonInvalidPassword:    "Väärä salasana. Yritä uudelleen.",
	model.ReasonInvalidCredentials: "Väärä sähköposti tai salasana.",
	model.ReasonUserDisabled:       "Käyttäjätili on poistettu käytöstä.",
}

type HandlerDeps struct {
	Auth service.AuthService
	Spin service.SpinService
}

type Handler struct {
	auth service.AuthService
	spin service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{auth: deps.Auth, spin: deps.Spin}
}

// Register creates the account and its profile record. The play session
// that registered is authenticated on success.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	id, err := h.auth.Register(r.Context(), converter.RegisterRequestToModel(&requestBody))
	if err != nil {
		status, message := registerError(err)
		zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("register failed")
		resp.WriteError(w, status, message)
		return
	}

	h.authenticate(r)

	resp.WriteJSONResponse(w, http.StatusOK, dto.RegisterResponse{
		Success: true,
		Message: msgRegistrationSaved,
		ID:      id,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, msgCredentialsMissing)
		return
	}

	result, err := h.auth.Login(r.Context(), converter.LoginRequestToModel(&requestBody))
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("login failed")
		writeLoginError(w, err)
		return
	}

	h.authenticate(r)

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLoginResponse(result))
}

// Logout drops the authenticated flag of the play session; spent plays stay spent
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.PlaySessionFromContext(r.Context())
	if ok {
		if err := h.spin.Logout(r.Context(), session); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("logout failed")
			resp.WriteError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.UpdatePreferencesRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	err = h.auth.UpdatePreferences(
		r.Context(),
		middleware.BearerToken(r),
		requestBody.UserID,
		converter.PreferencesToModel(requestBody.Preferences),
	)
	if err != nil {
		status, message := preferencesError(err)
		zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("update preferences failed")
		resp.WriteError(w, status, message)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: msgPrefsUpdated})
}

// authenticate lifts the play cap; a failure here does not undo the login
func (h *Handler) authenticate(r *http.Request) {
	session, ok := middleware.PlaySessionFromContext(r.Context())
	if !ok {
		return
	}
	if err := h.spin.Authenticate(r.Context(), session); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("authenticate play session")
	}
}

func registerError(err error) (int, string) {
	var perr *model.ProviderError
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, model.ErrDuplicateEmail):
		return http.StatusBadRequest, msgEmailExists
	case errors.Is(err, model.ErrPartialWrite):
		return http.StatusInternalServerError, msgSaveFailed
	case errors.As(err, &perr):
		return http.StatusBadRequest, msgCreateUserFailed
	default:
		return http.StatusInternalServerError, msgSaveFailed
	}
}

func writeLoginError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrValidation) {
		resp.WriteError(w, http.StatusBadRequest, msgCredentialsMissing)
		return
	}

	var aerr *model.AuthError
	if errors.As(err, &aerr) {
		if msg, ok := loginMessages[aerr.Reason]; ok {
			resp.WriteError(w, http.StatusUnauthorized, msg)
			return
		}
		resp.WriteErrorDetails(w, http.StatusUnauthorized, msgLoginFailed, aerr.Code)
		return
	}

	resp.WriteError(w, http.StatusInternalServerError, msgLoginFailed)
}

func preferencesError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, model.ErrProfileNotFound):
		return http.StatusNotFound, msgProfileNotFound
	default:
		return http.StatusInternalServerError, msgPrefsFailed
	}
}
