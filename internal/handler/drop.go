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
	"github.com/lib/pq"
)

// fetchDrop recharge un drop avec la colonne user_joined calculée
func fetchDrop(ctx context.Context, dropID string, userID *string) (*model.MomentDrop, error) {
	var row pgx.Row
	if userID != nil && *userID != "" {
		row = database.DB.QueryRow(ctx, `
			SELECT
				d.id, d.creator_id, d.type, d.title, d.description,
				d.location_name, d.latitude, d.longitude, d.radius_meters,
				d.start_time, d.end_time, d.max_participants, d.current_participants,
				d.reward_xp, d.reward_items, d.is_anonymous, d.is_viral, d.viral_count,
				d.created_at,
				EXISTS(
					SELECT 1 FROM moment_drop_participants p
					WHERE p.drop_id = d.id AND p.user_id = $2
				) AS user_joined
			FROM moment_drops d
			WHERE d.id = $1
		`, dropID, *userID)
	} else {
		row = database.DB.QueryRow(ctx, `
			SELECT
				d.id, d.creator_id, d.type, d.title, d.description,
				d.location_name, d.latitude, d.longitude, d.radius_meters,
				d.start_time, d.end_time, d.max_participants, d.current_participants,
				d.reward_xp, d.reward_items, d.is_anonymous, d.is_viral, d.viral_count,
				d.created_at,
				FALSE AS user_joined
			FROM moment_drops d
			WHERE d.id = $1
		`, dropID)
	}

	return scanner.ScanMomentDrop(row)
}

// GetMomentDrops récupère le feed des drops en cours
// Si lat/lng sont fournis, seuls les drops dont le rayon couvre la position
// sont retournés ; le filtrage géographique se fait après la requête SQL
func GetMomentDrops(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()
	query := r.URL.Query()

	user, _ := middleware.GetUserFromContext(r)

	dropType := query.Get("type")
	lat, hasLat := utils.QueryFloat(r, "lat")
	lng, hasLng := utils.QueryFloat(r, "lng")
	hasPosition := hasLat && hasLng

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
			d.id, d.creator_id, d.type, d.title, d.description,
			d.location_name, d.latitude, d.longitude, d.radius_meters,
			d.start_time, d.end_time, d.max_participants, d.current_participants,
			d.reward_xp, d.reward_items, d.is_anonymous, d.is_viral, d.viral_count,
			d.created_at,
	`

	if user.ID != "" {
		sqlQuery += `
			EXISTS(
				SELECT 1 FROM moment_drop_participants p
				WHERE p.drop_id = d.id AND p.user_id = $` + strconv.Itoa(argCount) + `
			) AS user_joined`
		args = append(args, user.ID)
		argCount++
	} else {
		sqlQuery += "FALSE AS user_joined"
	}

	sqlQuery += `
		FROM moment_drops d
		WHERE d.start_time <= NOW()
		  AND d.end_time > NOW()
	`

	if dropType != "" {
		if !model.ValidDropType(model.DropType(dropType)) {
			utils.ErrorSimple(w, http.StatusBadRequest, "unknown drop type")
			return
		}
		sqlQuery += " AND d.type = $" + strconv.Itoa(argCount)
		args = append(args, dropType)
		argCount++
	}

	sqlQuery += " ORDER BY d.is_viral DESC, d.created_at DESC LIMIT $" + strconv.Itoa(argCount)
	args = append(args, limit)

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query drops", err)
		return
	}
	defer rows.Close()

	drops := []model.MomentDrop{}
	for rows.Next() {
		drop, err := scanner.ScanMomentDrop(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan drop row", err)
			return
		}

		// Un drop sans position est visible partout
		if hasPosition && drop.Latitude != nil && drop.Longitude != nil {
			if !utils.WithinRadius(lat, lng, *drop.Latitude, *drop.Longitude, float64(drop.RadiusMeters)) {
				continue
			}
		}

		drops = append(drops, *drop)
	}

	utils.Success(w, drops)
}

// GetDropById récupère un drop par son ID
func GetDropById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dropID := vars["id"]

	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
	}

	drop, err := fetchDrop(context.Background(), dropID, userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "drop not found", err)
		return
	}

	utils.Success(w, drop)
}

// CreateMomentDrop crée un drop éphémère
func CreateMomentDrop(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var drop model.MomentDrop
	if err := utils.DecodeJSON(r, &drop); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !model.ValidDropType(drop.Type) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown drop type")
		return
	}
	if !drop.EndTime.After(drop.StartTime) {
		utils.ErrorSimple(w, http.StatusBadRequest, "end time must be after start time")
		return
	}
	if drop.RadiusMeters <= 0 {
		drop.RadiusMeters = 500
	}
	if drop.RewardItems == nil {
		drop.RewardItems = []string{}
	}

	ctx := context.Background()
	err = database.DB.QueryRow(ctx, `
		INSERT INTO moment_drops(
			creator_id, type, title, description, location_name,
			latitude, longitude, radius_meters, start_time, end_time,
			max_participants, current_participants, reward_xp, reward_items,
			is_anonymous, is_viral, viral_count, created_at
		) VALUES(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13, $14, FALSE, 0, NOW()
		)
		RETURNING id, created_at
	`,
		user.ID, drop.Type, drop.Title, drop.Description, drop.LocationName,
		drop.Latitude, drop.Longitude, drop.RadiusMeters, drop.StartTime, drop.EndTime,
		drop.MaxParticipants, drop.RewardXP, pq.Array(drop.RewardItems), drop.IsAnonymous,
	).Scan(&drop.ID, &drop.CreatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create drop", err)
		return
	}

	drop.CreatorID = user.ID
	drop.CurrentParticipants = 0
	utils.Success(w, drop)
}

// JoinDrop inscrit l'utilisateur courant à un drop
// La transaction garantit que le compteur et la ligne participant restent
// cohérents : la capacité et la fenêtre de temps sont vérifiées dans le WHERE
func JoinDrop(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dropID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	// Clé primaire composite (drop_id, user_id) : le doublon est absorbé ici
	res, err := tx.Exec(ctx, `
		INSERT INTO moment_drop_participants(drop_id, user_id, joined_at)
		VALUES($1, $2, NOW())
		ON CONFLICT (drop_id, user_id) DO NOTHING
	`, dropID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not join drop", err)
		return
	}

	if res.RowsAffected() == 0 {
		// Déjà inscrit : no-op, retourner l'état actuel
		drop, err := fetchDrop(ctx, dropID, &user.ID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "drop not found", err)
			return
		}
		utils.Success(w, drop)
		return
	}

	counterRes, err := tx.Exec(ctx, `
		UPDATE moment_drops SET current_participants = current_participants + 1
		WHERE id = $1
		  AND start_time <= NOW()
		  AND end_time > NOW()
		  AND (max_participants IS NULL OR current_participants < max_participants)
	`, dropID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not join drop", err)
		return
	}

	if counterRes.RowsAffected() == 0 {
		// Fenêtre close ou capacité atteinte : la transaction annule l'insertion
		drop, fetchErr := fetchDrop(ctx, dropID, nil)
		if fetchErr != nil {
			utils.Error(w, http.StatusNotFound, "drop not found", fetchErr)
			return
		}
		if drop.IsFull() {
			utils.ErrorSimple(w, http.StatusConflict, "drop is full")
			return
		}
		utils.ErrorSimple(w, http.StatusGone, "drop has ended")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not join drop", err)
		return
	}

	drop, err := fetchDrop(ctx, dropID, &user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch drop", err)
		return
	}

	utils.Success(w, drop)
}

// LeaveDrop désinscrit l'utilisateur courant d'un drop
// La ligne participant est identifiée par sa clé composite, jamais par une
// colonne id qui n'existe pas sur cette table
func LeaveDrop(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dropID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		DELETE FROM moment_drop_participants
		WHERE drop_id = $1 AND user_id = $2
	`, dropID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave drop", err)
		return
	}

	if res.RowsAffected() > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE moment_drops
			SET current_participants = GREATEST(current_participants - 1, 0)
			WHERE id = $1
		`, dropID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not leave drop", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave drop", err)
		return
	}

	drop, err := fetchDrop(ctx, dropID, &user.ID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "drop not found", err)
		return
	}

	utils.Success(w, drop)
}

// ShareDrop incrémente le compteur viral d'un drop
// Un drop devient viral à partir de 10 partages
func ShareDrop(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dropID := vars["id"]

	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
	}

	ctx := context.Background()
	res, err := database.DB.Exec(ctx, `
		UPDATE moment_drops SET
			viral_count = viral_count + 1,
			is_viral = (viral_count + 1 >= 10)
		WHERE id = $1
	`, dropID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not share drop", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "drop not found")
		return
	}

	drop, err := fetchDrop(ctx, dropID, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch drop", err)
		return
	}

	utils.Success(w, drop)
}

// DeleteDrop supprime un drop (créateur ou admin)
func DeleteDrop(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dropID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()

	var creatorID string
	err = database.DB.QueryRow(ctx,
		`SELECT creator_id FROM moment_drops WHERE id=$1`, dropID,
	).Scan(&creatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "drop not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not fetch drop", err)
		return
	}

	if creatorID != user.ID && !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "only the creator can delete this drop")
		return
	}

	_, err = database.DB.Exec(ctx, `DELETE FROM moment_drops WHERE id=$1`, dropID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete drop", err)
		return
	}

	utils.Message(w, "drop deleted successfully")
}
