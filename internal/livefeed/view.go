package livefeed

import "time"

// CardState paramètres d'un élément à fenêtre temporelle et compteur
type CardState struct {
	CurrentCount int
	TargetCount  int
	StartTime    time.Time
	EndTime      time.Time
	IsActive     bool
}

// CardView modèle de rendu d'une carte de feed
type CardView struct {
	ProgressPercent int    `json:"progressPercent"`
	TimeLeft        string `json:"timeLeft"`
	Completed       bool   `json:"completed"` // bandeau "Challenge Complete!"
	Ended           bool   `json:"ended"`
	JoinEnabled     bool   `json:"joinEnabled"`
}

// BuildCardView calcule le modèle de rendu d'une carte : progression plafonnée
// à 100%, compte à rebours, bandeau de complétion dès que la cible est atteinte,
// action join désactivée hors fenêtre ou déjà rejoint
func BuildCardView(s CardState, joined bool, now time.Time) CardView {
	progress := 0
	if s.TargetCount > 0 {
		progress = s.CurrentCount * 100 / s.TargetCount
		if progress > 100 {
			progress = 100
		}
	}

	ended := !now.Before(s.EndTime)

	return CardView{
		ProgressPercent: progress,
		TimeLeft:        FormatRemaining(Remaining(s.EndTime, now)),
		Completed:       s.CurrentCount >= s.TargetCount,
		Ended:           ended,
		JoinEnabled:     Live(s.StartTime, s.EndTime, s.IsActive, now) && !joined,
	}
}
