package spin

import (
	"fmt"

	"tosipeli/internal/model"
)

const (
	winAdvice = "Jatkamalla saman yhtiön tuotteilla saat isoimman bonuksen."
	tipAdvice = "Et saanut valitettavasti suurta keskittämisbonusta koska sinun hajauttaminen kolmeen eri yhtiöön tuottaa säästöä."
)

// Classify turns the three picks into a verdict. Anything short of three
// identical insurers, two equal included, is a tip.
func Classify(picks [3]model.Insurer) model.SpinOutcome {
	auto, home, travel := picks[0], picks[1], picks[2]

	if auto.ID == home.ID && home.ID == travel.ID {
		return model.SpinOutcome{
			Picks:   picks,
			Kind:    model.OutcomeWin,
			Message: fmt.Sprintf("Suuri keskittämisbonus! Kaikki: %s", auto.Name),
			Advice:  winAdvice,
			Lines:   lineWinnerTexts(picks),
		}
	}

	return model.SpinOutcome{
		Picks: picks,
		Kind:  model.OutcomeTip,
		Message: fmt.Sprintf(
			"Säästät rahaa ottamalla Autovakuutuksen %s:sta, Kotivakuutuksen %ssta ja Matkavakuutuksen %ssta.",
			auto.Name, home.Name, travel.Name,
		),
		Advice: tipAdvice,
		Lines:  lineWinnerTexts(picks),
	}
}

// lineWinnerTexts one line per coverage, in auto, home, travel order
func lineWinnerTexts(picks [3]model.Insurer) [3]string {
	return [3]string{
		fmt.Sprintf("%s voitti autovakuutuksen kilpailutuksen", picks[0].Name),
		fmt.Sprintf("%s voitti kotivakuutuksen kilpailutuksen", picks[1].Name),
		fmt.Sprintf("%s voitti matkavakuutuksen kilpailutuksen", picks[2].Name),
	}
}
