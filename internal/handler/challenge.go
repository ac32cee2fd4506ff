package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

// fetchChallenge recharge un challenge avec la colonne user_joined calculée
func fetchChallenge(ctx context.Context, challengeID string, userID *string) (*model.CityChallenge, error) {
	var row pgx.Row
	if userID != nil && *userID != "" {
		row = database.DB.QueryRow(ctx, `
			SELECT
				id, name, description, type, city, start_time, end_time,
				target_count, current_count, participants, rewards_xp,
				rewards_badge, rewards_title, is_active, is_global,
				created_at, updated_at,
				($2 = ANY(participants)) AS user_joined
			FROM city_challenges
			WHERE id = $1
		`, challengeID, *userID)
	} else {
		row = database.DB.QueryRow(ctx, `
			SELECT
				id, name, description, type, city, start_time, end_time,
				target_count, current_count, participants, rewards_xp,
				rewards_badge, rewards_title, is_active, is_global,
				created_at, updated_at,
				FALSE AS user_joined
			FROM city_challenges
			WHERE id = $1
		`, challengeID)
	}

	return scanner.ScanCityChallenge(row)
}

// GetCityChallenges récupère le feed des challenges en cours
// Filtres optionnels : city (inclut toujours les challenges globaux), type, limit
func GetCityChallenges(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()
	query := r.URL.Query()

	// Récupérer l'utilisateur depuis le contexte (OptionalAuth)
	user, _ := middleware.GetUserFromContext(r)

	city := query.Get("city")
	challengeType := query.Get("type")

	// Limite par défaut 10, plafond 50
	limit := utils.QueryInt(r, "limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	args := []interface{}{}
	argCount := 1

	sqlQuery := `
		SELECT
			id, name, description, type, city, start_time, end_time,
			target_count, current_count, participants, rewards_xp,
			rewards_badge, rewards_title, is_active, is_global,
			created_at, updated_at,
	`

	if user.ID != "" {
		sqlQuery += "($" + strconv.Itoa(argCount) + " = ANY(participants)) AS user_joined"
		args = append(args, user.ID)
		argCount++
	} else {
		sqlQuery += "FALSE AS user_joined"
	}

	// Seuls les challenges dans leur fenêtre de temps apparaissent dans le feed
	sqlQuery += `
		FROM city_challenges
		WHERE is_active = TRUE
		  AND start_time <= NOW()
		  AND end_time > NOW()
	`

	if city != "" {
		sqlQuery += " AND (is_global = TRUE OR city = $" + strconv.Itoa(argCount) + ")"
		args = append(args, city)
		argCount++
	}

	if challengeType != "" {
		if !model.ValidChallengeType(model.ChallengeType(challengeType)) {
			utils.ErrorSimple(w, http.StatusBadRequest, "unknown challenge type")
			return
		}
		sqlQuery += " AND type = $" + strconv.Itoa(argCount)
		args = append(args, challengeType)
		argCount++
	}

	sqlQuery += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(argCount)
	args = append(args, limit)

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query challenges", err)
		return
	}
	defer rows.Close()

	challenges := []model.CityChallenge{}
	for rows.Next() {
		challenge, err := scanner.ScanCityChallenge(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan challenge row", err)
			return
		}
		challenges = append(challenges, *challenge)
	}

	utils.Success(w, challenges)
}

// GetChallengeById récupère un challenge par son ID
func GetChallengeById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
	}

	challenge, err := fetchChallenge(context.Background(), challengeID, userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "challenge not found", err)
		return
	}

	utils.Success(w, challenge)
}

// JoinChallenge inscrit l'utilisateur courant à un challenge
// Le compteur et la liste des participants sont mis à jour côté serveur en une
// seule requête conditionnelle : la fenêtre de temps et le doublon sont
// vérifiés dans le WHERE, jamais dans le code applicatif
func JoinChallenge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		UPDATE city_challenges SET
			current_count = current_count + 1,
			participants = array_append(participants, $2),
			updated_at = NOW()
		WHERE id = $1
		  AND is_active = TRUE
		  AND start_time <= NOW()
		  AND end_time > NOW()
		  AND NOT ($2 = ANY(participants))
		RETURNING
			id, name, description, type, city, start_time, end_time,
			target_count, current_count, participants, rewards_xp,
			rewards_badge, rewards_title, is_active, is_global,
			created_at, updated_at,
			TRUE AS user_joined
	`, challengeID, user.ID)

	challenge, err := scanner.ScanCityChallenge(row)
	if err == nil {
		utils.Success(w, challenge)
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		utils.Error(w, http.StatusInternalServerError, "could not join challenge", err)
		return
	}

	// Aucune ligne touchée : distinguer inexistant, déjà inscrit, ou fenêtre close
	challenge, err = fetchChallenge(ctx, challengeID, &user.ID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "challenge not found", err)
		return
	}

	if challenge.UserJoined {
		// Déjà inscrit : pas d'écriture, l'état actuel est retourné tel quel
		utils.Success(w, challenge)
		return
	}

	utils.ErrorSimple(w, http.StatusGone, "challenge has ended")
}

// LeaveChallenge désinscrit l'utilisateur courant d'un challenge
// Le compteur ne descend jamais sous zéro (GREATEST côté SQL)
func LeaveChallenge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		UPDATE city_challenges SET
			current_count = GREATEST(current_count - 1, 0),
			participants = array_remove(participants, $2),
			updated_at = NOW()
		WHERE id = $1
		  AND $2 = ANY(participants)
		RETURNING
			id, name, description, type, city, start_time, end_time,
			target_count, current_count, participants, rewards_xp,
			rewards_badge, rewards_title, is_active, is_global,
			created_at, updated_at,
			FALSE AS user_joined
	`, challengeID, user.ID)

	challenge, err := scanner.ScanCityChallenge(row)
	if err == nil {
		utils.Success(w, challenge)
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		utils.Error(w, http.StatusInternalServerError, "could not leave challenge", err)
		return
	}

	// Pas inscrit : no-op, retourner l'état actuel
	challenge, err = fetchChallenge(ctx, challengeID, &user.ID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "challenge not found", err)
		return
	}

	utils.Success(w, challenge)
}

// GetChallengeLeaderboard retourne le classement des participants d'un challenge
func GetChallengeLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	limit := utils.QueryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := context.Background()
	rows, err := database.DB.Query(ctx, `
		SELECT
			u.id, u.name, COALESCE(r.total_xp, 0) AS score,
			RANK() OVER (ORDER BY COALESCE(r.total_xp, 0) DESC) AS rank
		FROM city_challenges c
		JOIN users u ON u.id = ANY(c.participants)
		LEFT JOIN user_social_roles r ON r.user_id = u.id
		WHERE c.id = $1 AND u.deleted_at IS NULL
		ORDER BY score DESC, u.name ASC
		LIMIT $2
	`, challengeID, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	defer rows.Close()

	entries := []model.ChallengeLeaderboardEntry{}
	for rows.Next() {
		var e model.ChallengeLeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Score, &e.Rank); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan leaderboard row", err)
			return
		}
		entries = append(entries, e)
	}

	utils.Success(w, entries)
}

// CreateChallenge crée un nouveau challenge (admin)
func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	var challenge model.CityChallenge
	if err := utils.DecodeJSON(r, &challenge); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !model.ValidChallengeType(challenge.Type) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown challenge type")
		return
	}
	if !challenge.EndTime.After(challenge.StartTime) {
		utils.ErrorSimple(w, http.StatusBadRequest, "end time must be after start time")
		return
	}
	if challenge.TargetCount < 1 {
		utils.ErrorSimple(w, http.StatusBadRequest, "target count must be positive")
		return
	}

	ctx := context.Background()
	err := database.DB.QueryRow(ctx, `
		INSERT INTO city_challenges(
			name, description, type, city, start_time, end_time,
			target_count, current_count, participants, rewards_xp,
			rewards_badge, rewards_title, is_active, is_global,
			created_at, updated_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7, 0, '{}', $8, $9, $10, $11, $12, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`,
		challenge.Name, challenge.Description, challenge.Type, challenge.City,
		challenge.StartTime, challenge.EndTime, challenge.TargetCount,
		challenge.RewardsXP, challenge.RewardsBadge, challenge.RewardsTitle,
		challenge.IsActive, challenge.IsGlobal,
	).Scan(&challenge.ID, &challenge.CreatedAt, &challenge.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create challenge", err)
		return
	}

	challenge.CurrentCount = 0
	challenge.Participants = []string{}
	utils.Success(w, challenge)
}

// UpdateChallenge met à jour un challenge existant (admin)
// Les compteurs de participation ne sont jamais écrasés par cette route
func UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var challenge model.CityChallenge
	if err := utils.DecodeJSON(r, &challenge); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !model.ValidChallengeType(challenge.Type) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown challenge type")
		return
	}

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `
		UPDATE city_challenges SET
			name=$1, description=$2, type=$3, city=$4, start_time=$5, end_time=$6,
			target_count=$7, rewards_xp=$8, rewards_badge=$9, rewards_title=$10,
			is_active=$11, is_global=$12, updated_at=NOW()
		WHERE id=$13
	`,
		challenge.Name, challenge.Description, challenge.Type, challenge.City,
		challenge.StartTime, challenge.EndTime, challenge.TargetCount,
		challenge.RewardsXP, challenge.RewardsBadge, challenge.RewardsTitle,
		challenge.IsActive, challenge.IsGlobal, id,
	)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update challenge", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	updated, err := fetchChallenge(ctx, id, nil)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated challenge", err)
		return
	}

	utils.Success(w, updated)
}

// DeleteChallenge supprime un challenge (admin)
// La suppression exige une confirmation explicite dans le corps de la requête
func DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !payload.Confirm {
		utils.ErrorSimple(w, http.StatusBadRequest, "deletion must be confirmed")
		return
	}

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `DELETE FROM city_challenges WHERE id=$1`, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete challenge", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	utils.Message(w, "challenge deleted successfully")
}

// GetUserChallenges liste les challenges auxquels un utilisateur participe
func GetUserChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	status := r.URL.Query().Get("status") // live, ended, ou vide pour tout

	ctx := context.Background()
	sqlQuery := `
		SELECT
			id, name, description, type, city, start_time, end_time,
			target_count, current_count, participants, rewards_xp,
			rewards_badge, rewards_title, is_active, is_global,
			created_at, updated_at,
			TRUE AS user_joined
		FROM city_challenges
		WHERE $1 = ANY(participants)
	`
	switch status {
	case "live":
		sqlQuery += " AND is_active = TRUE AND start_time <= NOW() AND end_time > NOW()"
	case "ended":
		sqlQuery += " AND end_time <= NOW()"
	}
	sqlQuery += " ORDER BY end_time ASC"

	rows, err := database.DB.Query(ctx, sqlQuery, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query user challenges", err)
		return
	}
	defer rows.Close()

	challenges := []model.CityChallenge{}
	for rows.Next() {
		challenge, err := scanner.ScanCityChallenge(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan challenge row", err)
			return
		}
		challenges = append(challenges, *challenge)
	}

	utils.Success(w, challenges)
}
