package handler

import (
	"net/http"

	"github.com/Hnibbo/hup-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Hup API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "GET", "path": "/auth/me", "description": "Profil de l'utilisateur courant"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/{id}", "description": "Profil public d'un utilisateur"},
				{"method": "PUT", "path": "/users/me", "description": "Mettre à jour son profil"},
				{"method": "POST", "path": "/users/me/avatar", "description": "Upload de l'avatar"},
				{"method": "DELETE", "path": "/users/me", "description": "Supprimer son compte (confirmation requise)"},
			},
			"challenges": []map[string]string{
				{"method": "GET", "path": "/challenges", "description": "Feed des challenges en cours (params: city, type, limit)"},
				{"method": "GET", "path": "/challenges/{id}", "description": "Récupérer un challenge par ID"},
				{"method": "POST", "path": "/challenges/{id}/join", "description": "Rejoindre un challenge"},
				{"method": "POST", "path": "/challenges/{id}/leave", "description": "Quitter un challenge"},
				{"method": "GET", "path": "/challenges/{id}/leaderboard", "description": "Classement d'un challenge"},
				{"method": "GET", "path": "/challenges/mine", "description": "Challenges de l'utilisateur courant (param: status)"},
				{"method": "POST", "path": "/challenges", "description": "Créer un challenge (admin)"},
				{"method": "PUT", "path": "/challenges/{id}", "description": "Mettre à jour un challenge (admin)"},
				{"method": "DELETE", "path": "/challenges/{id}", "description": "Supprimer un challenge (admin, confirmation requise)"},
			},
			"drops": []map[string]string{
				{"method": "GET", "path": "/drops", "description": "Feed des drops en cours (params: lat, lng, type, limit)"},
				{"method": "GET", "path": "/drops/{id}", "description": "Récupérer un drop par ID"},
				{"method": "POST", "path": "/drops", "description": "Créer un drop"},
				{"method": "POST", "path": "/drops/{id}/join", "description": "Rejoindre un drop"},
				{"method": "POST", "path": "/drops/{id}/leave", "description": "Quitter un drop"},
				{"method": "POST", "path": "/drops/{id}/share", "description": "Partager un drop (compteur viral)"},
				{"method": "DELETE", "path": "/drops/{id}", "description": "Supprimer un drop (créateur ou admin)"},
			},
			"signals": []map[string]string{
				{"method": "GET", "path": "/signals", "description": "Signal actif de l'utilisateur courant"},
				{"method": "POST", "path": "/signals", "description": "Diffuser un signal social"},
				{"method": "DELETE", "path": "/signals", "description": "Retirer son signal"},
				{"method": "GET", "path": "/signals/nearby", "description": "Comptage des signaux d'une ville (param: city)"},
				{"method": "GET", "path": "/signals/catalog", "description": "Liste des signaux et libellés"},
			},
			"roles": []map[string]string{
				{"method": "GET", "path": "/roles/me", "description": "Rôle social et progression"},
				{"method": "POST", "path": "/roles/progress", "description": "Incrémenter les compteurs de progression"},
				{"method": "GET", "path": "/roles/definitions", "description": "Table des archétypes"},
			},
			"energy": []map[string]string{
				{"method": "GET", "path": "/energy", "description": "État énergétique d'une ville (param: city)"},
			},
			"loneliness": []map[string]string{
				{"method": "GET", "path": "/loneliness/check", "description": "Détection d'isolement"},
				{"method": "POST", "path": "/loneliness/response", "description": "Réaction à une interruption"},
			},
			"capsules": []map[string]string{
				{"method": "GET", "path": "/capsules", "description": "Capsules mémoire de l'utilisateur (param: type)"},
				{"method": "GET", "path": "/capsules/{id}", "description": "Récupérer une capsule par ID"},
				{"method": "POST", "path": "/capsules", "description": "Créer une capsule"},
				{"method": "PUT", "path": "/capsules/{id}", "description": "Mettre à jour une capsule"},
				{"method": "DELETE", "path": "/capsules/{id}", "description": "Supprimer une capsule"},
				{"method": "POST", "path": "/capsules/{id}/media", "description": "Upload d'un média"},
			},
			"billing": []map[string]string{
				{"method": "GET", "path": "/billing/plans", "description": "Plans d'abonnement"},
				{"method": "GET", "path": "/billing/subscription", "description": "Statut d'abonnement"},
				{"method": "POST", "path": "/billing/portal", "description": "Session du portail de facturation"},
				{"method": "POST", "path": "/billing/test", "description": "Test de connexion billing (admin)"},
			},
			"admin": []map[string]string{
				{"method": "GET", "path": "/admin/stats", "description": "Statistiques du dashboard admin"},
				{"method": "GET", "path": "/admin/users", "description": "Liste des utilisateurs (params: limit, offset)"},
				{"method": "POST", "path": "/admin/plans", "description": "Créer un plan d'abonnement"},
				{"method": "PUT", "path": "/admin/plans/{id}", "description": "Mettre à jour un plan"},
				{"method": "POST", "path": "/admin/plans/{id}/toggle", "description": "Activer/désactiver un plan"},
				{"method": "DELETE", "path": "/admin/plans/{id}", "description": "Supprimer un plan (confirmation requise)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour Hup - La ville devient ton terrain de jeu social",
			"contact":     "support@hup.app",
		},
	}

	utils.Success(w, routes)
}
