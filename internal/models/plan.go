package model

import "time"

// SubscriptionPlan ligne de la table subscription_plans, gérée par l'écran admin
type SubscriptionPlan struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description,omitempty"`
	PriceCents    int       `json:"priceCents"`
	Interval      string    `json:"interval"` // month, year
	Features      []string  `json:"features"`
	StripePriceID *string   `json:"stripePriceId,omitempty"`
	IsPopular     bool      `json:"isPopular"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SubscriptionStatus résultat de la consultation du statut d'abonnement
type SubscriptionStatus struct {
	Tier    string     `json:"tier"`
	Status  string     `json:"status"`
	EndDate *time.Time `json:"endDate,omitempty"`
}
