package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/logger"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	var user model.UserProfile
	var hashedPassword string

	err := database.DB.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(avatar,'') as avatar, COALESCE(city,'') as city,
		 COALESCE(bio,'') as bio, COALESCE(subscription_tier,'free') as subscription_tier,
		 is_admin, join_date, created_at, updated_at, password_hash
		 FROM users WHERE email=$1 AND deleted_at IS NULL`,
		strings.ToLower(strings.TrimSpace(req.Email)),
	).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.City, &user.Bio,
		&user.SubscriptionTier, &user.IsAdmin, &user.JoinDate, &user.CreatedAt,
		&user.UpdatedAt, &hashedPassword)

	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	logger.Success("user %s logged in", user.ID)

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	ctx := context.Background()
	if err := utils.InvalidateSession(ctx, token); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not logout", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		City     string `json:"city,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Name == "" || payload.Email == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if len(payload.Password) < 8 {
		utils.ErrorSimple(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var user model.UserProfile
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, city, subscription_tier, is_admin, join_date, created_at, updated_at)
		 VALUES($1, $2, $3, $4, 'free', FALSE, NOW(), NOW(), NOW())
		 RETURNING id, name, email, COALESCE(city,''), subscription_tier, is_admin, join_date, created_at, updated_at`,
		payload.Name, strings.ToLower(strings.TrimSpace(payload.Email)), string(hashed),
		utils.StringToNull(payload.City),
	).Scan(&user.ID, &user.Name, &user.Email, &user.City, &user.SubscriptionTier,
		&user.IsAdmin, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusConflict, "could not create user", err)
		return
	}

	// Auto-login après inscription
	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	logger.Success("new user %s signed up", user.ID)

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// GetMe retourne le profil de l'utilisateur courant, résolu par le middleware
// d'authentification depuis le token de session
func GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}

	utils.Success(w, user)
}
