package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const planColumns = `
	id, name, slug, description, price_cents, interval, features,
	stripe_price_id, is_popular, is_active, created_at, updated_at`

// GetAdminStats agrège les compteurs du dashboard admin
// Tous les comptages partent d'une seule requête : le dashboard est
// rafraîchi en polling, pas question d'empiler douze allers-retours
func GetAdminStats(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	ctx := context.Background()
	var stats model.AdminDashboardStats

	err := database.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM user_presence WHERE last_seen > NOW() - INTERVAL '24 hours'),
			(SELECT COUNT(*) FROM city_challenges),
			(SELECT COUNT(*) FROM city_challenges WHERE is_active AND start_time <= NOW() AND end_time > NOW()),
			(SELECT COUNT(*) FROM moment_drops),
			(SELECT COUNT(*) FROM moment_drops WHERE start_time <= NOW() AND end_time > NOW()),
			(SELECT COUNT(*) FROM memory_capsules),
			(SELECT COUNT(*) FROM user_presence WHERE intent_icons <> '{}' AND (expires_at IS NULL OR expires_at > NOW())),
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND created_at > NOW() - INTERVAL '1 day'),
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND created_at > NOW() - INTERVAL '7 days'),
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND created_at > NOW() - INTERVAL '30 days'),
			(SELECT COUNT(*) FROM moment_drop_participants WHERE joined_at > NOW() - INTERVAL '1 day'),
			(SELECT COUNT(*) FROM moment_drop_participants WHERE joined_at > NOW() - INTERVAL '7 days')
	`).Scan(
		&stats.TotalUsers, &stats.ActiveUsers,
		&stats.TotalChallenges, &stats.ActiveChallenges,
		&stats.TotalDrops, &stats.LiveDrops,
		&stats.TotalCapsules, &stats.ActiveSignals,
		&stats.NewUsersToday, &stats.NewUsersThisWeek, &stats.NewUsersThisMonth,
		&stats.JoinsToday, &stats.JoinsThisWeek,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute admin stats", err)
		return
	}

	stats.GeneratedAt = time.Now()
	utils.Success(w, stats)
}

// GetSubscriptionPlans liste les plans d'abonnement
// Route publique : seuls les plans actifs sortent sans le flag admin
func GetSubscriptionPlans(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	sqlQuery := `SELECT ` + planColumns + ` FROM subscription_plans`
	if !middleware.IsAdmin(r) {
		sqlQuery += " WHERE is_active = TRUE"
	}
	sqlQuery += " ORDER BY price_cents ASC"

	rows, err := database.DB.Query(ctx, sqlQuery)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query plans", err)
		return
	}
	defer rows.Close()

	plans := []model.SubscriptionPlan{}
	for rows.Next() {
		plan, err := scanner.ScanSubscriptionPlan(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan plan row", err)
			return
		}
		plans = append(plans, *plan)
	}

	utils.Success(w, plans)
}

// CreateSubscriptionPlan crée un plan d'abonnement (admin)
func CreateSubscriptionPlan(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	var plan model.SubscriptionPlan
	if err := utils.DecodeJSON(r, &plan); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if plan.Name == "" || plan.Slug == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and slug are required")
		return
	}
	if plan.PriceCents < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if plan.Interval != "month" && plan.Interval != "year" {
		utils.ErrorSimple(w, http.StatusBadRequest, "interval must be month or year")
		return
	}
	if plan.Features == nil {
		plan.Features = []string{}
	}

	ctx := context.Background()
	err := database.DB.QueryRow(ctx, `
		INSERT INTO subscription_plans(
			name, slug, description, price_cents, interval, features,
			stripe_price_id, is_popular, is_active, created_at, updated_at
		) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`,
		plan.Name, plan.Slug, plan.Description, plan.PriceCents, plan.Interval,
		pq.Array(plan.Features), plan.StripePriceID, plan.IsPopular, plan.IsActive,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create plan", err)
		return
	}

	utils.Success(w, plan)
}

// UpdateSubscriptionPlan met à jour un plan (admin)
func UpdateSubscriptionPlan(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var plan model.SubscriptionPlan
	if err := utils.DecodeJSON(r, &plan); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if plan.Interval != "month" && plan.Interval != "year" {
		utils.ErrorSimple(w, http.StatusBadRequest, "interval must be month or year")
		return
	}
	if plan.Features == nil {
		plan.Features = []string{}
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		UPDATE subscription_plans SET
			name=$1, slug=$2, description=$3, price_cents=$4, interval=$5,
			features=$6, stripe_price_id=$7, is_popular=$8, is_active=$9,
			updated_at=NOW()
		WHERE id=$10
		RETURNING `+planColumns,
		plan.Name, plan.Slug, plan.Description, plan.PriceCents, plan.Interval,
		pq.Array(plan.Features), plan.StripePriceID, plan.IsPopular, plan.IsActive, id,
	)

	updated, err := scanner.ScanSubscriptionPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "plan not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not update plan", err)
		return
	}

	utils.Success(w, updated)
}

// ToggleSubscriptionPlan bascule l'activation d'un plan (admin)
func ToggleSubscriptionPlan(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		UPDATE subscription_plans SET
			is_active = NOT is_active,
			updated_at = NOW()
		WHERE id=$1
		RETURNING `+planColumns, id,
	)

	plan, err := scanner.ScanSubscriptionPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "plan not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not toggle plan", err)
		return
	}

	utils.Success(w, plan)
}

// DeleteSubscriptionPlan supprime un plan (admin)
// La suppression exige une confirmation explicite dans le corps de la requête
func DeleteSubscriptionPlan(w http.ResponseWriter, r *http.Request) {
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
	res, err := database.DB.Exec(ctx, `DELETE FROM subscription_plans WHERE id=$1`, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete plan", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "plan not found")
		return
	}

	utils.Message(w, "plan deleted successfully")
}

// GetAdminUsers liste les utilisateurs pour l'écran admin
func GetAdminUsers(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}

	limit := utils.QueryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := utils.QueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	ctx := context.Background()
	rows, err := database.DB.Query(ctx, `
		SELECT id, name, email, avatar, city, bio, subscription_tier, is_admin,
			join_date, created_at, updated_at, deleted_at
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query users", err)
		return
	}
	defer rows.Close()

	users := []model.UserProfile{}
	for rows.Next() {
		user, err := scanner.ScanUserProfile(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan user row", err)
			return
		}
		users = append(users, *user)
	}

	utils.Success(w, users)
}
