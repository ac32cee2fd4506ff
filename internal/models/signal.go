package model

// SocialSignal est l'intention qu'un utilisateur diffuse aux personnes proches
type SocialSignal string

const (
	SignalOpenToTalk   SocialSignal = "open_to_talk"
	SignalDontApproach SocialSignal = "dont_approach"
	SignalLookingChaos SocialSignal = "looking_for_chaos"
	SignalLookingCalm  SocialSignal = "looking_for_calm"
	SignalOpenToDating SocialSignal = "open_to_dating"
	SignalJustWatching SocialSignal = "just_watching"
	SignalPartyMode    SocialSignal = "party_mode"
	SignalNeedsCompany SocialSignal = "needs_company"
	SignalPanicMode    SocialSignal = "panic_mode"
)

// AllSignals liste les signaux dans l'ordre d'affichage du sélecteur
var AllSignals = []SocialSignal{
	SignalOpenToTalk,
	SignalDontApproach,
	SignalLookingChaos,
	SignalLookingCalm,
	SignalOpenToDating,
	SignalJustWatching,
	SignalPartyMode,
	SignalNeedsCompany,
	SignalPanicMode,
}

func ValidSignal(s SocialSignal) bool {
	for _, v := range AllSignals {
		if v == s {
			return true
		}
	}
	return false
}

// SignalLabels libellés affichables, métadonnées statiques côté code
var SignalLabels = map[SocialSignal]string{
	SignalOpenToTalk:   "Open to Chat",
	SignalDontApproach: "Do Not Disturb",
	SignalLookingChaos: "Bring the Chaos",
	SignalLookingCalm:  "Chill Vibes",
	SignalOpenToDating: "Open to Dating",
	SignalJustWatching: "Just Watching",
	SignalPartyMode:    "Party Mode",
	SignalNeedsCompany: "Need Company",
	SignalPanicMode:    "Panic Mode",
}

// NearbySignalCount agrège les signaux actifs autour de l'utilisateur
type NearbySignalCount struct {
	Signal SocialSignal `json:"signal"`
	Count  int          `json:"count"`
}
