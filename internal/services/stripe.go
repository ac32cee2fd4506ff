package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Hnibbo/hup-backend/internal/config"
	model "github.com/Hnibbo/hup-backend/internal/models"
)

// StripeService est une façade sans état autour des fonctions billing
// distantes. Elle ne contient aucune logique de paiement : elle valide la
// forme des clés (préfixe uniquement) et relaie trois opérations — test de
// connexion, création de session du portail client, consultation du statut
// d'abonnement. Les webhooks et le checkout restent côté fonctions distantes.
type StripeService struct {
	publishableKey string
	secretKey      string
	functionsURL   string
	client         *http.Client
}

// ValidPublishableKey vérifie la forme d'une clé publiable (préfixe pk_)
func ValidPublishableKey(key string) bool {
	return strings.HasPrefix(key, "pk_")
}

// ValidSecretKey vérifie la forme d'une clé secrète (préfixe sk_ ou rk_)
func ValidSecretKey(key string) bool {
	return strings.HasPrefix(key, "sk_") || strings.HasPrefix(key, "rk_")
}

// NewStripeService crée la façade billing
func NewStripeService(cfg *config.Config) (*StripeService, error) {
	if !ValidPublishableKey(cfg.StripePublishableKey) {
		return nil, fmt.Errorf("invalid publishable key format (expected pk_ prefix)")
	}
	if !ValidSecretKey(cfg.StripeSecretKey) {
		return nil, fmt.Errorf("invalid secret key format (expected sk_ or rk_ prefix)")
	}
	if cfg.BillingFunctionsURL == "" {
		return nil, fmt.Errorf("billing functions URL is missing")
	}

	return &StripeService{
		publishableKey: cfg.StripePublishableKey,
		secretKey:      cfg.StripeSecretKey,
		functionsURL:   strings.TrimRight(cfg.BillingFunctionsURL, "/"),
		client:         &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// invoke relaie une action vers la fonction billing distante
func (s *StripeService) invoke(ctx context.Context, action string, params map[string]interface{}, out interface{}) error {
	payload := map[string]interface{}{"action": action}
	for k, v := range params {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.functionsURL+"/stripe-admin", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("billing function unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("billing function error: %s", apiErr.Error)
		}
		return fmt.Errorf("billing function returned status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// TestConnection vérifie que la fonction billing répond avec les clés configurées
func (s *StripeService) TestConnection(ctx context.Context) error {
	return s.invoke(ctx, "ping", nil, nil)
}

// CreatePortalSession crée une session du portail client et retourne son URL
func (s *StripeService) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if customerID == "" {
		return "", fmt.Errorf("customer id is required")
	}

	var result struct {
		URL string `json:"url"`
	}
	err := s.invoke(ctx, "create-portal", map[string]interface{}{
		"customerId": customerID,
		"returnUrl":  returnURL,
	}, &result)
	if err != nil {
		return "", err
	}

	return result.URL, nil
}

// GetSubscriptionStatus consulte le statut d'abonnement d'un utilisateur
func (s *StripeService) GetSubscriptionStatus(ctx context.Context, userID string) (*model.SubscriptionStatus, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	var status model.SubscriptionStatus
	err := s.invoke(ctx, "subscription-status", map[string]interface{}{
		"userId": userID,
	}, &status)
	if err != nil {
		// Dégradation : un utilisateur sans abonnement connu est free/inactive
		return &model.SubscriptionStatus{Tier: "free", Status: "inactive"}, nil
	}

	if status.Tier == "" {
		status.Tier = "free"
	}
	if status.Status == "" {
		status.Status = "inactive"
	}

	return &status, nil
}
