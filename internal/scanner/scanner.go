package scanner

import (
	"database/sql"

	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/lib/pq"
)

// RowScanner est satisfait par pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile
func ScanUserProfile(scanner RowScanner) (*model.UserProfile, error) {
	var u model.UserProfile
	var avatar, city, bio, tier sql.NullString
	var deletedAt sql.NullTime

	err := scanner.Scan(
		&u.ID, &u.Name, &u.Email, &avatar, &city, &bio, &tier, &u.IsAdmin,
		&u.JoinDate, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	u.Avatar = utils.NullStringToString(avatar)
	u.City = utils.NullStringToString(city)
	u.Bio = utils.NullStringToString(bio)
	u.SubscriptionTier = utils.NullStringToString(tier)
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = "free"
	}
	u.DeletedAt = utils.NullTimeToPointer(deletedAt)

	return &u, nil
}

// ScanCityChallenge scanne une ligne SQL vers un CityChallenge
func ScanCityChallenge(scanner RowScanner) (*model.CityChallenge, error) {
	var c model.CityChallenge
	var description, badge, title sql.NullString
	var userJoined sql.NullBool

	err := scanner.Scan(
		&c.ID, &c.Name, &description, &c.Type, &c.City,
		&c.StartTime, &c.EndTime, &c.TargetCount, &c.CurrentCount,
		pq.Array(&c.Participants), &c.RewardsXP, &badge, &title,
		&c.IsActive, &c.IsGlobal, &c.CreatedAt, &c.UpdatedAt,
		&userJoined,
	)
	if err != nil {
		return nil, err
	}

	c.Description = utils.NullStringToPointer(description)
	c.RewardsBadge = utils.NullStringToPointer(badge)
	c.RewardsTitle = utils.NullStringToPointer(title)
	c.UserJoined = utils.NullBoolToBool(userJoined)
	if c.Participants == nil {
		c.Participants = []string{}
	}

	return &c, nil
}

// ScanMomentDrop scanne une ligne SQL vers un MomentDrop
func ScanMomentDrop(scanner RowScanner) (*model.MomentDrop, error) {
	var d model.MomentDrop
	var description, locationName sql.NullString
	var lat, lng sql.NullFloat64
	var maxParticipants, rewardXP sql.NullInt64
	var userJoined sql.NullBool

	err := scanner.Scan(
		&d.ID, &d.CreatorID, &d.Type, &d.Title, &description,
		&locationName, &lat, &lng, &d.RadiusMeters,
		&d.StartTime, &d.EndTime, &maxParticipants, &d.CurrentParticipants,
		&rewardXP, pq.Array(&d.RewardItems), &d.IsAnonymous,
		&d.IsViral, &d.ViralCount, &d.CreatedAt,
		&userJoined,
	)
	if err != nil {
		return nil, err
	}

	d.Description = utils.NullStringToPointer(description)
	d.LocationName = utils.NullStringToPointer(locationName)
	if lat.Valid {
		d.Latitude = &lat.Float64
	}
	if lng.Valid {
		d.Longitude = &lng.Float64
	}
	d.MaxParticipants = utils.NullInt64ToPointer(maxParticipants)
	d.RewardXP = utils.NullInt64ToPointer(rewardXP)
	d.UserJoined = utils.NullBoolToBool(userJoined)
	if d.RewardItems == nil {
		d.RewardItems = []string{}
	}

	return &d, nil
}

// ScanUserPresence scanne une ligne SQL vers un UserPresence
func ScanUserPresence(scanner RowScanner) (*model.UserPresence, error) {
	var p model.UserPresence
	var lat, lng sql.NullFloat64
	var city sql.NullString
	var lastSeen, expiresAt sql.NullTime

	err := scanner.Scan(
		&p.UserID, pq.Array(&p.IntentIcons), &lat, &lng, &city,
		&lastSeen, &expiresAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lng.Valid {
		p.Longitude = &lng.Float64
	}
	p.City = utils.NullStringToString(city)
	p.LastSeen = utils.NullTimeToPointer(lastSeen)
	p.ExpiresAt = utils.NullTimeToPointer(expiresAt)
	if p.IntentIcons == nil {
		p.IntentIcons = []string{}
	}

	return &p, nil
}

// ScanUserSocialRole scanne une ligne SQL vers un UserSocialRole
func ScanUserSocialRole(scanner RowScanner) (*model.UserSocialRole, error) {
	var r model.UserSocialRole
	var secondary, badges, achievements []string

	err := scanner.Scan(
		&r.UserID, &r.PrimaryRole, pq.Array(&secondary),
		&r.RolePoints, &r.RoleLevel,
		&r.ConnectionsMade, &r.EventsHosted, &r.GroupsLed,
		&r.PlacesVisited, &r.ContentLikes, &r.IncognitoSessions, &r.TotalXP,
		pq.Array(&badges), pq.Array(&achievements),
		&r.StreakDays, &r.MaxStreak,
		&r.LastRoleUpdate, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.SecondaryRoles = make([]model.SocialRole, 0, len(secondary))
	for _, s := range secondary {
		r.SecondaryRoles = append(r.SecondaryRoles, model.SocialRole(s))
	}
	r.BadgesEarned = badges
	r.AchievementsUnlocked = achievements
	if r.BadgesEarned == nil {
		r.BadgesEarned = []string{}
	}
	if r.AchievementsUnlocked == nil {
		r.AchievementsUnlocked = []string{}
	}

	return &r, nil
}

// ScanCityEnergyState scanne une ligne SQL vers un CityEnergyState
func ScanCityEnergyState(scanner RowScanner) (*model.CityEnergyState, error) {
	var e model.CityEnergyState
	var neighborhood sql.NullString

	err := scanner.Scan(
		&e.ID, &e.City, &neighborhood, &e.EnergyType,
		&e.Intensity, &e.ActiveUsers, &e.EventsCount, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Neighborhood = utils.NullStringToPointer(neighborhood)

	return &e, nil
}

// ScanMemoryCapsule scanne une ligne SQL vers un MemoryCapsule
func ScanMemoryCapsule(scanner RowScanner) (*model.MemoryCapsule, error) {
	var c model.MemoryCapsule
	var description, locationName, personName, groupName sql.NullString
	var visitedAt sql.NullTime

	err := scanner.Scan(
		&c.ID, &c.UserID, &c.Type, &c.Title, &description,
		&locationName, &personName, &groupName,
		pq.Array(&c.MediaURLs), pq.Array(&c.Tags), &visitedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Description = utils.NullStringToPointer(description)
	c.LocationName = utils.NullStringToPointer(locationName)
	c.PersonName = utils.NullStringToPointer(personName)
	c.GroupName = utils.NullStringToPointer(groupName)
	c.VisitedAt = utils.NullTimeToPointer(visitedAt)
	if c.MediaURLs == nil {
		c.MediaURLs = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}

	return &c, nil
}

// ScanSubscriptionPlan scanne une ligne SQL vers un SubscriptionPlan
func ScanSubscriptionPlan(scanner RowScanner) (*model.SubscriptionPlan, error) {
	var p model.SubscriptionPlan
	var description, stripePriceID sql.NullString

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &description, &p.PriceCents, &p.Interval,
		pq.Array(&p.Features), &stripePriceID, &p.IsPopular, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = utils.NullStringToPointer(description)
	p.StripePriceID = utils.NullStringToPointer(stripePriceID)
	if p.Features == nil {
		p.Features = []string{}
	}

	return &p, nil
}
