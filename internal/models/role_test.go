package model

import "testing"

func TestClassifyPicksHighestPriorityArchetype(t *testing.T) {
	// Compteurs qui satisfont à la fois Connector et Explorer :
	// Connector est prioritaire dans la table
	r := &UserSocialRole{
		ConnectionsMade: 60,
		StreakDays:      10,
		PlacesVisited:   35,
	}
	if got := Classify(r); got != RoleConnector {
		t.Errorf("Classify = %s, want %s", got, RoleConnector)
	}
}

func TestClassifyIgnoresUntrackedRequirements(t *testing.T) {
	// Host exige events_hosted (suivi) et total_attendees (non suivi) :
	// seul le compteur suivi compte
	r := &UserSocialRole{EventsHosted: 15}
	if got := Classify(r); got != RoleHost {
		t.Errorf("Classify = %s, want %s", got, RoleHost)
	}
}

func TestClassifyGhost(t *testing.T) {
	r := &UserSocialRole{IncognitoSessions: 25}
	if got := Classify(r); got != RoleGhost {
		t.Errorf("Classify = %s, want %s", got, RoleGhost)
	}
}

func TestClassifyInactiveWhenNothingMet(t *testing.T) {
	r := &UserSocialRole{ConnectionsMade: 3, PlacesVisited: 2}
	if got := Classify(r); got != RoleInactive {
		t.Errorf("Classify = %s, want %s", got, RoleInactive)
	}
}

func TestClassifyLegendOutranksEverything(t *testing.T) {
	r := &UserSocialRole{
		TotalXP:           12000,
		ConnectionsMade:   100,
		EventsHosted:      50,
		StreakDays:        30,
		IncognitoSessions: 50,
	}
	if got := Classify(r); got != RoleLegend {
		t.Errorf("Classify = %s, want %s", got, RoleLegend)
	}
}

func TestCounterUntrackedTypes(t *testing.T) {
	r := &UserSocialRole{}
	for _, name := range []string{"total_attendees", "tags_mentioned", "unique_activities", "community_impact"} {
		if _, tracked := r.Counter(name); tracked {
			t.Errorf("Counter(%q) should not be tracked", name)
		}
	}
	if _, tracked := r.Counter("connections_made"); !tracked {
		t.Error("Counter(connections_made) should be tracked")
	}
}

func TestFindRoleDefinition(t *testing.T) {
	def := FindRoleDefinition(RoleGhost)
	if def == nil || def.Name != "Ghost" {
		t.Fatalf("FindRoleDefinition(ghost) = %+v", def)
	}
	if FindRoleDefinition(RoleInactive) != nil {
		t.Error("inactive has no definition")
	}
}
