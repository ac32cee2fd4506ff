package model

import "time"

type UserProfile struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Avatar           string     `json:"avatar,omitempty"`
	City             string     `json:"city,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	SubscriptionTier string     `json:"subscriptionTier"`
	IsAdmin          bool       `json:"isAdmin"`
	JoinDate         time.Time  `json:"joinDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
}

// UserPresence représente la dernière présence connue d'un utilisateur
// L'invariant est qu'un utilisateur porte au plus un signal actif à la fois :
// IntentIcons est toujours remplacé par un tableau d'un seul élément
type UserPresence struct {
	UserID      string     `json:"userId"`
	IntentIcons []string   `json:"intentIcons"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	City        string     `json:"city,omitempty"`
	LastSeen    *time.Time `json:"lastSeen,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
