package converter

import (
	"strconv"

	dto "tosipeli/internal/api/dto/auth"
	"tosipeli/internal/model"
)

func RegisterRequestToModel(req *dto.RegisterRequest) *model.Registration {
	return &model.Registration{
		Email:    req.Email,
		Password: req.Password,
		Profile: model.Profile{
			Sotu:             req.Sotu,
			Zip:              req.Zip,
			Plate:            req.Plate,
			HomeSize:         req.HomeSize,
			ConsentStore:     req.ConsentStore,
			ConsentMarketing: req.ConsentMarketing,
			ConsentSale:      req.ConsentSale,
		},
	}
}

func LoginRequestToModel(req *dto.LoginRequest) model.Credentials {
	return model.Credentials{
		Email:    req.Email,
		Password: req.Password,
	}
}

func ToLoginResponse(res *model.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		Success: true,
		User: dto.LoginUser{
			Email:        res.Identity.Email,
			UserID:       res.Identity.AccountID,
			Token:        res.Identity.Token,
			RefreshToken: res.Identity.RefreshToken,
			ExpiresIn:    strconv.Itoa(int(res.Identity.ExpiresIn.Seconds())),
			UserData:     toUserData(res.Profile),
		},
	}
}

func toUserData(p *model.Profile) *dto.UserData {
	if p == nil {
		return nil
	}
	data := &dto.UserData{
		ID:       p.ID,
		Sotu:     p.Sotu,
		Zip:      p.Zip,
		Plate:    p.Plate,
		HomeSize: p.HomeSize,
	}
	if p.Preferences != nil {
		data.Preferences = &dto.Preferences{
			Auto:   p.Preferences.Auto,
			Home:   p.Preferences.Home,
			Travel: p.Preferences.Travel,
		}
	}
	return data
}

// PreferencesToModel nil stays nil so the service can report it missing
func PreferencesToModel(p *dto.Preferences) *model.PreferenceSelection {
	if p == nil {
		return nil
	}
	return &model.PreferenceSelection{
		Auto:   p.Auto,
		Home:   p.Home,
		Travel: p.Travel,
	}
}
