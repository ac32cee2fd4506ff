package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const capsuleColumns = `
	id, user_id, type, title, description, location_name, person_name,
	group_name, media_urls, tags, visited_at, created_at, updated_at`

// GetMemoryCapsules liste les capsules de l'utilisateur courant
// Filtre optionnel : type (place, person, group, moment)
func GetMemoryCapsules(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	capsuleType := r.URL.Query().Get("type")
	if capsuleType != "" && !model.ValidCapsuleType(model.CapsuleType(capsuleType)) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown capsule type")
		return
	}

	ctx := context.Background()

	sqlQuery := `SELECT ` + capsuleColumns + ` FROM memory_capsules WHERE user_id = $1`
	args := []interface{}{user.ID}
	if capsuleType != "" {
		sqlQuery += " AND type = $2"
		args = append(args, capsuleType)
	}
	sqlQuery += " ORDER BY COALESCE(visited_at, created_at) DESC"

	rows, err := database.DB.Query(ctx, sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query capsules", err)
		return
	}
	defer rows.Close()

	capsules := []model.MemoryCapsule{}
	for rows.Next() {
		capsule, err := scanner.ScanMemoryCapsule(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan capsule row", err)
			return
		}
		capsules = append(capsules, *capsule)
	}

	utils.Success(w, capsules)
}

// GetCapsuleById récupère une capsule par son ID (propriétaire uniquement)
func GetCapsuleById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	capsuleID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx,
		`SELECT `+capsuleColumns+` FROM memory_capsules WHERE id = $1 AND user_id = $2`,
		capsuleID, user.ID)

	capsule, err := scanner.ScanMemoryCapsule(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "capsule not found", err)
		return
	}

	utils.Success(w, capsule)
}

// CreateMemoryCapsule crée une capsule mémoire
func CreateMemoryCapsule(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var capsule model.MemoryCapsule
	if err := utils.DecodeJSON(r, &capsule); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !model.ValidCapsuleType(capsule.Type) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown capsule type")
		return
	}
	if capsule.Title == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "title is required")
		return
	}
	if capsule.MediaURLs == nil {
		capsule.MediaURLs = []string{}
	}
	if capsule.Tags == nil {
		capsule.Tags = []string{}
	}

	ctx := context.Background()
	err = database.DB.QueryRow(ctx, `
		INSERT INTO memory_capsules(
			user_id, type, title, description, location_name, person_name,
			group_name, media_urls, tags, visited_at, created_at, updated_at
		) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`,
		user.ID, capsule.Type, capsule.Title, capsule.Description,
		capsule.LocationName, capsule.PersonName, capsule.GroupName,
		pq.Array(capsule.MediaURLs), pq.Array(capsule.Tags), capsule.VisitedAt,
	).Scan(&capsule.ID, &capsule.CreatedAt, &capsule.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create capsule", err)
		return
	}

	capsule.UserID = user.ID
	utils.Success(w, capsule)
}

// UpdateMemoryCapsule met à jour une capsule (propriétaire uniquement)
func UpdateMemoryCapsule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	capsuleID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var capsule model.MemoryCapsule
	if err := utils.DecodeJSON(r, &capsule); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !model.ValidCapsuleType(capsule.Type) {
		utils.ErrorSimple(w, http.StatusBadRequest, "unknown capsule type")
		return
	}
	if capsule.MediaURLs == nil {
		capsule.MediaURLs = []string{}
	}
	if capsule.Tags == nil {
		capsule.Tags = []string{}
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		UPDATE memory_capsules SET
			type=$1, title=$2, description=$3, location_name=$4, person_name=$5,
			group_name=$6, media_urls=$7, tags=$8, visited_at=$9, updated_at=NOW()
		WHERE id=$10 AND user_id=$11
		RETURNING `+capsuleColumns,
		capsule.Type, capsule.Title, capsule.Description, capsule.LocationName,
		capsule.PersonName, capsule.GroupName, pq.Array(capsule.MediaURLs),
		pq.Array(capsule.Tags), capsule.VisitedAt, capsuleID, user.ID,
	)

	updated, err := scanner.ScanMemoryCapsule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "capsule not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not update capsule", err)
		return
	}

	utils.Success(w, updated)
}

// DeleteMemoryCapsule supprime une capsule (propriétaire uniquement)
func DeleteMemoryCapsule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	capsuleID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()
	res, err := database.DB.Exec(ctx,
		`DELETE FROM memory_capsules WHERE id=$1 AND user_id=$2`,
		capsuleID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete capsule", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "capsule not found")
		return
	}

	utils.Message(w, "capsule deleted successfully")
}

// UploadCapsuleMedia upload un média (photo ou vidéo) vers Cloudinary et
// l'ajoute à la liste media_urls de la capsule
func UploadCapsuleMedia(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	capsuleID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	if Cloudinary == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	// Limite de 20 Mo par média
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("media")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "media file is required")
		return
	}
	defer file.Close()

	ctx := context.Background()

	// Vérifier que la capsule appartient bien à l'utilisateur
	var owner string
	err = database.DB.QueryRow(ctx,
		`SELECT user_id FROM memory_capsules WHERE id=$1`, capsuleID,
	).Scan(&owner)
	if err != nil || owner != user.ID {
		utils.ErrorSimple(w, http.StatusNotFound, "capsule not found")
		return
	}

	mediaURL, err := Cloudinary.UploadCapsuleMedia(ctx, file, capsuleID, uuid.NewString())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload media", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		UPDATE memory_capsules SET
			media_urls = array_append(media_urls, $2),
			updated_at = NOW()
		WHERE id=$1
		RETURNING `+capsuleColumns,
		capsuleID, mediaURL,
	)

	capsule, err := scanner.ScanMemoryCapsule(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not attach media", err)
		return
	}

	utils.Success(w, capsule)
}
