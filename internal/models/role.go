package model

import "time"

// SocialRole est l'archétype social dérivé de la progression d'un utilisateur
type SocialRole string

const (
	RoleConnector SocialRole = "connector"
	RoleExplorer  SocialRole = "explorer"
	RoleHost      SocialRole = "host"
	RoleMuse      SocialRole = "muse"
	RoleCatalyst  SocialRole = "catalyst"
	RoleLegend    SocialRole = "legend"
	RoleGhost     SocialRole = "ghost"
	RoleInactive  SocialRole = "inactive"
)

type UserSocialRole struct {
	UserID               string       `json:"userId"`
	PrimaryRole          SocialRole   `json:"primaryRole"`
	SecondaryRoles       []SocialRole `json:"secondaryRoles"`
	RolePoints           int          `json:"rolePoints"`
	RoleLevel            int          `json:"roleLevel"`
	ConnectionsMade      int          `json:"connectionsMade"`
	EventsHosted         int          `json:"eventsHosted"`
	GroupsLed            int          `json:"groupsLed"`
	PlacesVisited        int          `json:"placesVisited"`
	ContentLikes         int          `json:"contentLikes"`
	IncognitoSessions    int          `json:"incognitoSessions"`
	TotalXP              int          `json:"totalXp"`
	BadgesEarned         []string     `json:"badgesEarned"`
	AchievementsUnlocked []string     `json:"achievementsUnlocked"`
	StreakDays           int          `json:"streakDays"`
	MaxStreak            int          `json:"maxStreak"`
	LastRoleUpdate       time.Time    `json:"lastRoleUpdate"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// RoleRequirement est un seuil sur un compteur de progression
type RoleRequirement struct {
	Type      string `json:"type"`
	Threshold int    `json:"threshold"`
}

// RoleDefinition porte les métadonnées statiques d'un archétype
// (tenues côté code, jamais chargées depuis la base)
type RoleDefinition struct {
	ID           SocialRole        `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Requirements []RoleRequirement `json:"requirements"`
	Perks        []string          `json:"perks"`
}

// RoleDefinitions table des archétypes, dans l'ordre de priorité de classification
var RoleDefinitions = []RoleDefinition{
	{
		ID:          RoleLegend,
		Name:        "Legend",
		Description: "Your presence is legendary. You've achieved it all.",
		Requirements: []RoleRequirement{
			{Type: "total_xp", Threshold: 10000},
			{Type: "role_mastery", Threshold: 5},
		},
		Perks: []string{"Golden profile border", "All perks unlocked", "Legend badge", "Name in hall of fame"},
	},
	{
		ID:          RoleCatalyst,
		Name:        "Catalyst",
		Description: "You spark movements and drive change in your community.",
		Requirements: []RoleRequirement{
			{Type: "initiatives_started", Threshold: 5},
			{Type: "community_impact", Threshold: 1000},
		},
		Perks: []string{"Create city challenges", "+40% XP for community events", "Catalyst badge"},
	},
	{
		ID:          RoleHost,
		Name:        "Host",
		Description: "You create spaces where others feel welcome and engaged.",
		Requirements: []RoleRequirement{
			{Type: "events_hosted", Threshold: 10},
			{Type: "total_attendees", Threshold: 100},
		},
		Perks: []string{"+30% XP for hosting", "Custom event templates", "Host badge"},
	},
	{
		ID:          RoleConnector,
		Name:        "Connector",
		Description: "You bring people together. Your superpower is building bridges.",
		Requirements: []RoleRequirement{
			{Type: "connections_made", Threshold: 50},
			{Type: "streak_days", Threshold: 7},
		},
		Perks: []string{"+50% XP for introductions", "Priority in group suggestions", "Exclusive Connector badge"},
	},
	{
		ID:          RoleMuse,
		Name:        "Muse",
		Description: "You inspire others and create memorable moments.",
		Requirements: []RoleRequirement{
			{Type: "content_likes", Threshold: 500},
			{Type: "tags_mentioned", Threshold: 100},
		},
		Perks: []string{"Featured content priority", "+20% XP for interactions", "Muse badge"},
	},
	{
		ID:          RoleExplorer,
		Name:        "Explorer",
		Description: "You discover hidden gems and share them with the world.",
		Requirements: []RoleRequirement{
			{Type: "places_visited", Threshold: 30},
			{Type: "unique_activities", Threshold: 15},
		},
		Perks: []string{"+25% XP for new locations", "Early access to features", "Explorer badge"},
	},
	{
		ID:          RoleGhost,
		Name:        "Ghost",
		Description: "You prefer to observe. No judgment, just privacy.",
		Requirements: []RoleRequirement{
			{Type: "incognito_sessions", Threshold: 20},
		},
		Perks: []string{"Enhanced privacy options", "Ghost badge"},
	},
}

// FindRoleDefinition retourne la définition d'un archétype, nil si inconnu
func FindRoleDefinition(role SocialRole) *RoleDefinition {
	for i := range RoleDefinitions {
		if RoleDefinitions[i].ID == role {
			return &RoleDefinitions[i]
		}
	}
	return nil
}

// Counter retourne la valeur du compteur de progression nommé
// Le second retour est faux pour les exigences non suivies par la table user_social_roles
func (r *UserSocialRole) Counter(name string) (int, bool) {
	switch name {
	case "connections_made":
		return r.ConnectionsMade, true
	case "events_hosted":
		return r.EventsHosted, true
	case "groups_led":
		return r.GroupsLed, true
	case "places_visited":
		return r.PlacesVisited, true
	case "content_likes":
		return r.ContentLikes, true
	case "incognito_sessions":
		return r.IncognitoSessions, true
	case "total_xp":
		return r.TotalXP, true
	case "streak_days":
		return r.StreakDays, true
	default:
		return 0, false
	}
}

// Classify dérive l'archétype principal depuis les compteurs de progression :
// premier archétype dont toutes les exigences suivies sont satisfaites, inactive sinon
// Les exigences non suivies sont ignorées, mais un archétype sans aucune exigence
// suivie ne peut pas être atteint par classification
func Classify(r *UserSocialRole) SocialRole {
	for _, def := range RoleDefinitions {
		met := false
		for _, req := range def.Requirements {
			value, tracked := r.Counter(req.Type)
			if !tracked {
				continue
			}
			if value < req.Threshold {
				met = false
				break
			}
			met = true
		}
		if met {
			return def.ID
		}
	}
	return RoleInactive
}
