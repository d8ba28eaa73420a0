package spin

import (
	"errors"
	"net/http"

	dto "tosipeli/internal/api/dto/spin"
	"tosipeli/internal/converter"
	"tosipeli/internal/middleware"
	"tosipeli/internal/model"
	"tosipeli/internal/service"
	"tosipeli/pkg/req"
	"tosipeli/pkg/resp"

	"github.com/rs/zerolog"
)

type HandlerDeps struct {
	Serv service.SpinService
}

type Handler struct {
	serv service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := middleware.PlaySessionFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusInternalServerError, "play session missing")
		return
	}

	result, err := h.serv.Play(r.Context(), session, converter.SpinRequestToSelection(payload))
	if err != nil {
		writeSpinError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(result))
}

// Status evaluates the gate for the posted selection without spending a play
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := middleware.PlaySessionFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusInternalServerError, "play session missing")
		return
	}

	status, err := h.serv.Status(r.Context(), session, converter.SpinRequestToSelection(payload))
	if err != nil {
		writeSpinError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatusResponse(status))
}

func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, dto.CatalogResponse{
		Insurers: converter.ToInsurers(h.serv.Catalog()),
	})
}

func writeSpinError(w http.ResponseWriter, r *http.Request, err error) {
	var gerr *model.GateError
	switch {
	case errors.As(err, &gerr):
		status := http.StatusForbidden
		if gerr.State == model.GateNotReady {
			status = http.StatusBadRequest
		}
		resp.WriteJSONResponse(w, status, dto.BlockedResponse{
			Error: gerr.Message,
			State: string(gerr.State),
		})
	case errors.Is(err, model.ErrValidation):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("spin failed")
		resp.WriteError(w, http.StatusInternalServerError, "spin failed")
	}
}
