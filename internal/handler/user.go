package handler

import (
	"context"
	"net/http"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/logger"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/gorilla/mux"
)

const userColumns = `
	id, name, email, avatar, city, bio, subscription_tier, is_admin,
	join_date, created_at, updated_at, deleted_at`

// GetUserById récupère le profil public d'un utilisateur
func GetUserById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	ctx := context.Background()
	row := database.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1 AND deleted_at IS NULL`,
		userID)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, user)
}

// UpdateProfile met à jour le profil de l'utilisateur courant
// Champ vide dans le formulaire = colonne remise à NULL, jamais la chaîne vide
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var payload struct {
		Name string `json:"name"`
		City string `json:"city"`
		Bio  string `json:"bio"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		UPDATE users SET
			name=$1, city=$2, bio=$3, updated_at=NOW()
		WHERE id=$4 AND deleted_at IS NULL
		RETURNING `+userColumns,
		payload.Name, utils.StringToNull(payload.City), utils.StringToNull(payload.Bio), user.ID,
	)

	updated, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update profile", err)
		return
	}

	utils.Success(w, updated)
}

// UploadAvatar upload l'avatar de l'utilisateur courant vers Cloudinary
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	if Cloudinary == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	// Limite de 10 Mo pour un avatar
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	ctx := context.Background()
	avatarURL, err := Cloudinary.UploadAvatar(ctx, file, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		UPDATE users SET avatar=$1, updated_at=NOW()
		WHERE id=$2 AND deleted_at IS NULL
		RETURNING `+userColumns,
		avatarURL, user.ID,
	)

	updated, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar", err)
		return
	}

	utils.Success(w, updated)
}

// DeleteAccount soft delete le compte de l'utilisateur courant
// La suppression exige une confirmation explicite et invalide toutes les sessions
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

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
	res, err := database.DB.Exec(ctx,
		`UPDATE users SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`,
		user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete account", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found or already deleted")
		return
	}

	// Invalider toutes les sessions de l'utilisateur
	_, err = database.DB.Exec(ctx,
		`UPDATE sessions SET is_active=FALSE, deleted_at=NOW() WHERE user_id=$1 AND is_active=TRUE`,
		user.ID)
	if err != nil {
		logger.Warning("could not invalidate sessions for deleted user %s: %v", user.ID, err)
	}

	utils.Message(w, "account deleted successfully")
}
