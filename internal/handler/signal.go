package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/logger"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
)

// presenceTTL durée de vie d'un signal avant expiration automatique
const presenceTTL = 2 * time.Hour

// nearbyCacheTTL durée de cache Redis des comptages par ville
const nearbyCacheTTL = 30 * time.Second

type updateSignalRequest struct {
	Signal    model.SocialSignal `json:"signal"`
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
	City      string             `json:"city,omitempty"`
}

// UpdateSignal diffuse le signal social de l'utilisateur courant
// Un utilisateur porte au plus un signal actif : intent_icons est toujours
// remplacé par un tableau d'un seul élément, jamais complété
func UpdateSignal(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var req updateSignalRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !model.ValidSignal(req.Signal) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown signal")
		return
	}

	ctx := context.Background()
	now := time.Now()

	row := database.DB.QueryRow(ctx, `
		INSERT INTO user_presence(user_id, intent_icons, latitude, longitude, city, last_seen, expires_at, updated_at)
		VALUES($1, ARRAY[$2], $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			intent_icons = ARRAY[$2],
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			city = EXCLUDED.city,
			last_seen = EXCLUDED.last_seen,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING user_id, intent_icons, latitude, longitude, city, last_seen, expires_at, updated_at
	`, user.ID, string(req.Signal), req.Latitude, req.Longitude,
		utils.StringToNull(req.City), now, now.Add(presenceTTL))

	presence, err := scanner.ScanUserPresence(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update signal", err)
		return
	}

	// Invalider le cache des comptages de la ville
	if presence.City != "" {
		database.Redis.Del(ctx, "signals:city:"+presence.City)
	}

	// Le mode panique est relayé immédiatement aux clients abonnés de la ville
	if req.Signal == model.SignalPanicMode && presence.City != "" {
		payload, _ := json.Marshal(map[string]interface{}{
			"userId": user.ID,
			"city":   presence.City,
			"at":     now,
		})
		if err := database.Redis.Publish(ctx, "hup:panic:"+presence.City, payload).Err(); err != nil {
			logger.Warning("panic fanout failed for city %s: %v", presence.City, err)
		}
	}

	utils.Success(w, presence)
}

// ClearSignal retire le signal actif de l'utilisateur courant
func ClearSignal(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()
	var city string
	err = database.DB.QueryRow(ctx, `
		UPDATE user_presence SET
			intent_icons = '{}',
			expires_at = NULL,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING COALESCE(city, '')
	`, user.ID).Scan(&city)

	if err != nil {
		// Aucune présence : rien à retirer
		utils.Message(w, "signal cleared")
		return
	}

	if city != "" {
		database.Redis.Del(ctx, "signals:city:"+city)
	}

	utils.Message(w, "signal cleared")
}

// GetMySignal retourne la présence courante de l'utilisateur
func GetMySignal(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		SELECT user_id, intent_icons, latitude, longitude, city, last_seen, expires_at, updated_at
		FROM user_presence
		WHERE user_id = $1
	`, user.ID)

	presence, err := scanner.ScanUserPresence(row)
	if err != nil {
		// Jamais de signal diffusé : présence vide par défaut
		utils.Success(w, model.UserPresence{
			UserID:      user.ID,
			IntentIcons: []string{},
			UpdatedAt:   time.Now(),
		})
		return
	}

	utils.Success(w, presence)
}

// GetNearbySignals agrège les signaux actifs d'une ville, hors utilisateur courant
// Les comptages sont mis en cache dans Redis pendant 30 secondes
func GetNearbySignals(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r)

	city := r.URL.Query().Get("city")
	if city == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	ctx := context.Background()
	cacheKey := "signals:city:" + city

	if cached, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var counts []model.NearbySignalCount
		if err := json.Unmarshal([]byte(cached), &counts); err == nil {
			utils.Success(w, counts)
			return
		}
	}

	rows, err := database.DB.Query(ctx, `
		SELECT icon, COUNT(*) AS count
		FROM user_presence, unnest(intent_icons) AS icon
		WHERE city = $1
		  AND user_id <> $2
		  AND (expires_at IS NULL OR expires_at > NOW())
		GROUP BY icon
		ORDER BY count DESC
	`, city, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query signals", err)
		return
	}
	defer rows.Close()

	counts := []model.NearbySignalCount{}
	for rows.Next() {
		var c model.NearbySignalCount
		if err := rows.Scan(&c.Signal, &c.Count); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan signal row", err)
			return
		}
		counts = append(counts, c)
	}

	if payload, err := json.Marshal(counts); err == nil {
		database.Redis.Set(ctx, cacheKey, payload, nearbyCacheTTL)
	}

	utils.Success(w, counts)
}

// GetSignalCatalog retourne la liste des signaux et leurs libellés
func GetSignalCatalog(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Signal model.SocialSignal `json:"signal"`
		Label  string             `json:"label"`
	}

	catalog := make([]entry, 0, len(model.AllSignals))
	for _, s := range model.AllSignals {
		catalog = append(catalog, entry{Signal: s, Label: model.SignalLabels[s]})
	}

	utils.Success(w, catalog)
}
