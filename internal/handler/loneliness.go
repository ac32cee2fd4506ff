package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/lib/pq"
)

// interruptionCooldown délai minimal entre deux interruptions pour un même utilisateur
const interruptionCooldown = 4 * time.Hour

// lonelinessCheck réponse de la détection, avec le drapeau d'interruption
type lonelinessCheck struct {
	Detection       model.LonelinessDetection `json:"detection"`
	ShouldInterrupt bool                      `json:"shouldInterrupt"`
}

// isolationScore calcule le score d'isolement
// Chaque jour consécutif sans interaction pèse 15 points, le signal
// dont_approach en ajoute 20, le tout plafonné à 100
func isolationScore(daysIsolated int, dontApproach bool) int {
	score := daysIsolated * 15
	if dontApproach {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

// triggerLevelFor gradation des interruptions selon le score
func triggerLevelFor(score int) (model.TriggerLevel, bool) {
	switch {
	case score >= 90:
		return model.TriggerIntervention, true
	case score >= 75:
		return model.TriggerWarning, true
	case score >= 70:
		return model.TriggerInfo, true
	}
	return "", false
}

func suggestedActivities(level model.TriggerLevel) []string {
	switch level {
	case model.TriggerIntervention:
		return []string{"join_nearby_drop", "panic_mode_support", "call_a_friend"}
	case model.TriggerWarning:
		return []string{"join_nearby_drop", "open_to_talk_signal"}
	default:
		return []string{"browse_city_challenges"}
	}
}

// CheckLoneliness évalue l'isolement de l'utilisateur courant
// L'interruption est limitée à une par fenêtre de 4 heures via Redis : le
// SETNX pose le verrou et le TTL le relâche, aucun nettoyage applicatif
func CheckLoneliness(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()

	// Dernière interaction sociale : participation à un drop, ou la date
	// d'inscription si l'utilisateur n'a jamais rejoint quoi que ce soit
	var lastInteraction time.Time
	var lastJoin sql.NullTime
	err = database.DB.QueryRow(ctx,
		`SELECT MAX(joined_at) FROM moment_drop_participants WHERE user_id = $1`,
		user.ID,
	).Scan(&lastJoin)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query interactions", err)
		return
	}
	if lastJoin.Valid {
		lastInteraction = lastJoin.Time
	} else {
		lastInteraction = user.JoinDate
	}

	// Signal dont_approach actif ?
	var dontApproach bool
	database.DB.QueryRow(ctx, `
		SELECT $2 = ANY(intent_icons)
		FROM user_presence
		WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > NOW())
	`, user.ID, string(model.SignalDontApproach)).Scan(&dontApproach)

	now := time.Now()
	daysIsolated := int(now.Sub(lastInteraction).Hours() / 24)
	if daysIsolated < 0 {
		daysIsolated = 0
	}

	score := isolationScore(daysIsolated, dontApproach)

	detection := model.LonelinessDetection{
		UserID:              user.ID,
		IsolationScore:      score,
		ConsecutiveDays:     daysIsolated,
		SuggestedActivities: []string{},
	}
	if lastJoin.Valid {
		detection.LastSocialInteraction = &lastJoin.Time
	}

	level, triggered := triggerLevelFor(score)
	if !triggered {
		utils.Success(w, lonelinessCheck{Detection: detection})
		return
	}

	detection.TriggerLevel = level
	detection.SuggestedActivities = suggestedActivities(level)

	// Une seule interruption par fenêtre de 4h
	acquired, err := database.Redis.SetNX(ctx, "loneliness:interrupt:"+user.ID, now.Unix(), interruptionCooldown).Result()
	if err != nil {
		// Redis indisponible : on n'interrompt pas, la détection reste visible
		utils.Success(w, lonelinessCheck{Detection: detection})
		return
	}

	utils.Success(w, lonelinessCheck{Detection: detection, ShouldInterrupt: acquired})
}

type interventionResponseRequest struct {
	Accepted       bool               `json:"accepted"`
	IsolationScore int                `json:"isolationScore"`
	TriggerLevel   model.TriggerLevel `json:"triggerLevel"`
	ChosenActivity string             `json:"chosenActivity,omitempty"`
}

// RecordInterventionResponse enregistre la réaction de l'utilisateur à une interruption
func RecordInterventionResponse(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var req interventionResponseRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	var detection model.LonelinessDetection
	err = database.DB.QueryRow(ctx, `
		INSERT INTO loneliness_detections(
			user_id, isolation_score, trigger_level, accepted, chosen_activity,
			suggested_activities, created_at
		) VALUES($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`, user.ID, req.IsolationScore, req.TriggerLevel, req.Accepted,
		utils.StringToNull(req.ChosenActivity), pq.Array(suggestedActivities(req.TriggerLevel)),
	).Scan(&detection.ID, &detection.CreatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not record response", err)
		return
	}

	detection.UserID = user.ID
	detection.IsolationScore = req.IsolationScore
	detection.TriggerLevel = req.TriggerLevel
	detection.SuggestedActivities = suggestedActivities(req.TriggerLevel)

	utils.Success(w, detection)
}
