package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/logger"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
)

const roleColumns = `
	user_id, primary_role, secondary_roles, role_points, role_level,
	connections_made, events_hosted, groups_led, places_visited,
	content_likes, incognito_sessions, total_xp,
	badges_earned, achievements_unlocked, streak_days, max_streak,
	last_role_update, created_at, updated_at`

// defaultRole profil de progression vierge pour un utilisateur sans ligne en base
func defaultRole(userID string) *model.UserSocialRole {
	now := time.Now()
	return &model.UserSocialRole{
		UserID:               userID,
		PrimaryRole:          model.RoleInactive,
		SecondaryRoles:       []model.SocialRole{},
		BadgesEarned:         []string{},
		AchievementsUnlocked: []string{},
		LastRoleUpdate:       now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// GetMyRole retourne le rôle social et la progression de l'utilisateur courant
func GetMyRole(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM user_social_roles WHERE user_id = $1`, user.ID)

	role, err := scanner.ScanUserSocialRole(row)
	if err != nil {
		utils.Success(w, defaultRole(user.ID))
		return
	}

	utils.Success(w, role)
}

// GetRoleDefinitions retourne la table statique des archétypes
// Les exigences et perks sont tenus côté code, jamais chargés depuis la base
func GetRoleDefinitions(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, model.RoleDefinitions)
}

type roleProgressRequest struct {
	ConnectionsMade   int `json:"connectionsMade"`
	EventsHosted      int `json:"eventsHosted"`
	GroupsLed         int `json:"groupsLed"`
	PlacesVisited     int `json:"placesVisited"`
	ContentLikes      int `json:"contentLikes"`
	IncognitoSessions int `json:"incognitoSessions"`
	XPGained          int `json:"xpGained"`
}

// UpdateRoleProgress incrémente les compteurs de progression de l'utilisateur
// Les incréments sont appliqués en SQL sur la ligne existante, puis l'archétype
// principal est reclassifié depuis les nouveaux compteurs
func UpdateRoleProgress(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	var req roleProgressRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.ConnectionsMade < 0 || req.EventsHosted < 0 || req.GroupsLed < 0 ||
		req.PlacesVisited < 0 || req.ContentLikes < 0 || req.IncognitoSessions < 0 ||
		req.XPGained < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "progress increments must be positive")
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		INSERT INTO user_social_roles(
			user_id, primary_role, secondary_roles, role_points, role_level,
			connections_made, events_hosted, groups_led, places_visited,
			content_likes, incognito_sessions, total_xp,
			badges_earned, achievements_unlocked, streak_days, max_streak,
			last_role_update, created_at, updated_at
		) VALUES(
			$1, 'inactive', '{}', 0, 1, $2, $3, $4, $5, $6, $7, $8, '{}', '{}', 0, 0, NOW(), NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			connections_made = user_social_roles.connections_made + $2,
			events_hosted = user_social_roles.events_hosted + $3,
			groups_led = user_social_roles.groups_led + $4,
			places_visited = user_social_roles.places_visited + $5,
			content_likes = user_social_roles.content_likes + $6,
			incognito_sessions = user_social_roles.incognito_sessions + $7,
			total_xp = user_social_roles.total_xp + $8,
			updated_at = NOW()
		RETURNING `+roleColumns,
		user.ID, req.ConnectionsMade, req.EventsHosted, req.GroupsLed,
		req.PlacesVisited, req.ContentLikes, req.IncognitoSessions, req.XPGained,
	)

	role, err := scanner.ScanUserSocialRole(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update role progress", err)
		return
	}

	// Reclassifier l'archétype depuis les nouveaux compteurs
	newRole := model.Classify(role)
	if newRole != role.PrimaryRole {
		logger.Info("user %s role change: %s -> %s", user.ID, role.PrimaryRole, newRole)

		row = database.DB.QueryRow(ctx, `
			UPDATE user_social_roles SET
				primary_role = $2,
				last_role_update = NOW(),
				updated_at = NOW()
			WHERE user_id = $1
			RETURNING `+roleColumns,
			user.ID, newRole,
		)
		role, err = scanner.ScanUserSocialRole(row)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not reload role", err)
			return
		}
	}

	utils.Success(w, role)
}
