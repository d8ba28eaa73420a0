package converter

import (
	dto "tosipeli/internal/api/dto/spin"
	"tosipeli/internal/model"
)

func SpinRequestToSelection(req dto.SpinRequest) model.PreferenceSelection {
	return model.PreferenceSelection{
		Auto:   req.Auto,
		Home:   req.Home,
		Travel: req.Travel,
	}
}

func ToSpinResponse(res *model.PlayResult) dto.SpinResponse {
	return dto.SpinResponse{
		Success:   true,
		Picks:     ToInsurers(res.Outcome.Picks[:]),
		Lines:     res.Outcome.Lines[:],
		Kind:      string(res.Outcome.Kind),
		Message:   res.Outcome.Message,
		Advice:    res.Outcome.Advice,
		Hint:      res.Hint,
		PlayCount: res.PlayCount,
		Remaining: res.Remaining,
		Unlimited: res.Unlimited,
	}
}

func ToStatusResponse(st *model.PlayStatus) dto.StatusResponse {
	return dto.StatusResponse{
		State:     string(st.State),
		Permitted: st.State.Permitted(),
		PlayCount: st.PlayCount,
		Remaining: st.Remaining,
		Unlimited: st.Unlimited,
		Message:   st.Message,
	}
}

func ToInsurers(insurers []model.Insurer) []dto.Insurer {
	out := make([]dto.Insurer, 0, len(insurers))
	for _, ins := range insurers {
		out = append(out, dto.Insurer{
			ID:    ins.ID,
			Name:  ins.Name,
			Image: ins.Image,
		})
	}
	return out
}
