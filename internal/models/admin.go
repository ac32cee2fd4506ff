package model

import "time"

// AdminDashboardStats contient toutes les statistiques pour le dashboard admin
type AdminDashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	ActiveUsers      int `json:"activeUsers"` // Présence vue dans les dernières 24h
	TotalChallenges  int `json:"totalChallenges"`
	ActiveChallenges int `json:"activeChallenges"`
	TotalDrops       int `json:"totalDrops"`
	LiveDrops        int `json:"liveDrops"`
	TotalCapsules    int `json:"totalCapsules"`
	ActiveSignals    int `json:"activeSignals"`

	NewUsersToday     int `json:"newUsersToday"`
	NewUsersThisWeek  int `json:"newUsersThisWeek"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`

	JoinsToday    int `json:"joinsToday"`
	JoinsThisWeek int `json:"joinsThisWeek"`

	GeneratedAt time.Time `json:"generatedAt"`
}
