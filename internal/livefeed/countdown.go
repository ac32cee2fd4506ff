package livefeed

import (
	"fmt"
	"time"
)

// EndedLabel libellé terminal d'un élément dont la fenêtre est passée
const EndedLabel = "Ended"

// Live indique si un élément à fenêtre temporelle accepte encore des actions :
// start <= now < end, et drapeau actif levé
func Live(start, end time.Time, active bool, now time.Time) bool {
	return active && !now.Before(start) && now.Before(end)
}

// Remaining retourne le temps restant avant la fin de fenêtre
func Remaining(end, now time.Time) time.Duration {
	return end.Sub(now)
}

// FormatRemaining formate un temps restant avec la paire d'unités
// la plus grossière non nulle : "Xw Yd" à partir de 7 jours,
// "Xd Yh" à partir de 24 heures, "Xh Ym" à partir d'une heure, "Xm" sinon
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return EndedLabel
	}

	minutes := int(d / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days >= 7:
		return fmt.Sprintf("%dw %dd", days/7, days%7)
	case hours >= 24:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	case hours >= 1:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
