package handler

import (
	"context"
	"net/http"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	"github.com/Hnibbo/hup-backend/internal/utils"
)

// TestBillingConnection vérifie que la façade billing répond (admin)
func TestBillingConnection(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
		return
	}
	if Stripe == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "billing is not configured")
		return
	}

	if err := Stripe.TestConnection(r.Context()); err != nil {
		utils.Error(w, http.StatusBadGateway, "billing connection failed", err)
		return
	}

	utils.Message(w, "billing connection ok")
}

// CreatePortalSession ouvre une session du portail de facturation pour
// l'utilisateur courant et retourne son URL
func CreatePortalSession(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}
	if Stripe == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "billing is not configured")
		return
	}

	var payload struct {
		ReturnURL string `json:"returnUrl"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// L'identifiant client Stripe est stocké sur le profil
	ctx := context.Background()
	var customerID string
	err = database.DB.QueryRow(ctx,
		`SELECT COALESCE(stripe_customer_id, '') FROM users WHERE id=$1 AND deleted_at IS NULL`,
		user.ID,
	).Scan(&customerID)
	if err != nil || customerID == "" {
		utils.ErrorSimple(w, http.StatusNotFound, "no billing account for this user")
		return
	}

	url, err := Stripe.CreatePortalSession(r.Context(), customerID, payload.ReturnURL)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "could not create portal session", err)
		return
	}

	utils.Success(w, map[string]string{"url": url})
}

// GetSubscriptionStatus retourne le statut d'abonnement de l'utilisateur courant
func GetSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "impossible de récupérer l'utilisateur", err)
		return
	}
	if Stripe == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "billing is not configured")
		return
	}

	status, err := Stripe.GetSubscriptionStatus(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "could not fetch subscription status", err)
		return
	}

	utils.Success(w, status)
}
