package spin

import (
	"fmt"

	"tosipeli/internal/model"
)

// FreePlays number of plays an anonymous session gets
const FreePlays = 2

const (
	hintAlways   = "Muuta painoja simuloidaksesi kilpailutusta eri preferensseillä tai rekisteröidy palveluun tehdäksesi oikean kilpailutuksen oikeilla hinnoilla."
	hintFirstRun = "Muuta preferenssejä ja pelaa uudelleen tai rekisteröi tili ja pelaa tosipeliä oikeilla vakuutus tarjouksilla."
)

// Decide is the play gate policy. The selection must already be validated.
func Decide(selection model.PreferenceSelection, state model.PlaySessionState) model.GateState {
	switch {
	case !selection.Ready():
		return model.GateNotReady
	case state.Authenticated:
		return model.GatePermitted
	case state.PlayCount <= 0:
		return model.GatePermitted
	case state.PlayCount == 1:
		if state.LastPreferences != nil && *state.LastPreferences == selection {
			return model.GateExhaustedNoChange
		}
		return model.GatePermitted
	default:
		return model.GateExhausted
	}
}

func remaining(playCount int) int {
	return max(FreePlays-playCount, 0)
}

// statusMessage short status line shown next to the spin button
func statusMessage(state model.GateState, s model.PlaySessionState) string {
	switch state {
	case model.GateNotReady:
		return "Valitse ensin kaikki vakuutuspreferenssit"
	case model.GateExhausted:
		return fmt.Sprintf("Olet käyttänyt kaikki ilmaiset pyöritykset (%d/%d). Rekisteröidy jatkaaksesi peliä oikeilla hinnoilla", FreePlays, FreePlays)
	case model.GateExhaustedNoChange:
		return fmt.Sprintf("Muuta preferenssejä pelataksesi uudelleen. Pyörityksiä käytetty: %d/%d", s.PlayCount, FreePlays)
	}

	if s.Authenticated {
		return "Voit pyörittää!"
	}
	msg := fmt.Sprintf("Voit pyörittää! Pyörityksiä jäljellä: %d/%d", remaining(s.PlayCount), FreePlays)
	if s.PlayCount > 0 {
		msg += ". Preferenssit muutettu"
	}
	return msg
}

// blockedMessage longer explanation returned when a spin is refused
func blockedMessage(state model.GateState) string {
	switch state {
	case model.GateNotReady:
		return "Valitse ensin kaikki vakuutuspreferenssit: Autovakuutuksen laajuus, Kotivakuutuksen laajuus ja Matkavakuutuksen laajuus."
	case model.GateExhaustedNoChange:
		return "Saat toisen ilmaisen pyörityksen muuttamalla vähintään yhtä vakuutuspreferenssiä. Voit myös rekisteröityä pelataksesi oikeilla vakuutushinnoilla."
	case model.GateExhausted:
		return fmt.Sprintf("Olet käyttänyt molemmat ilmaiset pyöritykset (%d/%d). Rekisteröidy jatkaaksesi peliä oikeilla vakuutushinnoilla.", FreePlays, FreePlays)
	}
	return ""
}

// playHint is appended to the advice; previousCount is the count before this play
func playHint(previousCount int, authenticated bool) string {
	if authenticated {
		return ""
	}
	if previousCount == 0 {
		return hintAlways + " " + hintFirstRun
	}
	return hintAlways
}
