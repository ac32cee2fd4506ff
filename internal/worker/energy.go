package worker

import (
	"context"
	"time"

	"github.com/Hnibbo/hup-backend/internal/database"
	"github.com/Hnibbo/hup-backend/internal/livefeed"
	"github.com/Hnibbo/hup-backend/internal/logger"
	model "github.com/Hnibbo/hup-backend/internal/models"
)

// recomputeInterval cadence de recalcul de l'énergie des villes
const recomputeInterval = 30 * time.Second

// cityActivity photographie de l'activité d'une ville à un instant donné
type cityActivity struct {
	City        string
	ActiveUsers int
	LiveDrops   int
	LiveEvents  int
	PartySignal int
	CalmSignal  int
	ChaosSignal int
	DatingDrops int
}

// EnergyWorker recalcule périodiquement l'état énergétique des villes
// depuis les présences et les drops en cours. Le polling partagé garantit
// qu'un seul cycle tourne à la fois, les réponses en retard sont ignorées.
type EnergyWorker struct {
	source *livefeed.Source[cityActivity]
}

func NewEnergyWorker() *EnergyWorker {
	w := &EnergyWorker{}
	w.source = livefeed.NewSource(w.fetchActivity, recomputeInterval)
	w.source.OnUpdate(w.persist)
	return w
}

// Start lance le recalcul périodique en arrière-plan
func (w *EnergyWorker) Start(ctx context.Context) {
	logger.Info("energy worker started (every %s)", recomputeInterval)
	w.source.Start(ctx)
}

// Stop arrête le worker et attend la fin du cycle en cours
func (w *EnergyWorker) Stop() {
	w.source.Stop()
	logger.Info("energy worker stopped")
}

// fetchActivity agrège l'activité par ville
func (w *EnergyWorker) fetchActivity(ctx context.Context) ([]cityActivity, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT
			p.city,
			COUNT(*) FILTER (WHERE p.last_seen > NOW() - INTERVAL '2 hours') AS active_users,
			COUNT(*) FILTER (WHERE 'party_mode' = ANY(p.intent_icons)) AS party_signals,
			COUNT(*) FILTER (WHERE 'looking_for_calm' = ANY(p.intent_icons)) AS calm_signals,
			COUNT(*) FILTER (WHERE 'looking_for_chaos' = ANY(p.intent_icons)) AS chaos_signals
		FROM user_presence p
		WHERE p.city IS NOT NULL
		  AND (p.expires_at IS NULL OR p.expires_at > NOW())
		GROUP BY p.city
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []cityActivity
	for rows.Next() {
		var a cityActivity
		if err := rows.Scan(&a.City, &a.ActiveUsers, &a.PartySignal, &a.CalmSignal, &a.ChaosSignal); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	// Compléter avec les drops et challenges en cours, ville par ville
	for i := range activities {
		a := &activities[i]

		err := database.DB.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM moment_drops d
				 JOIN user_presence p ON p.user_id = d.creator_id
				 WHERE p.city = $1 AND d.start_time <= NOW() AND d.end_time > NOW()),
				(SELECT COUNT(*) FROM moment_drops d
				 JOIN user_presence p ON p.user_id = d.creator_id
				 WHERE p.city = $1 AND d.type = 'dating_boost'
				   AND d.start_time <= NOW() AND d.end_time > NOW()),
				(SELECT COUNT(*) FROM city_challenges c
				 WHERE (c.city = $1 OR c.is_global)
				   AND c.is_active AND c.start_time <= NOW() AND c.end_time > NOW())
		`, a.City).Scan(&a.LiveDrops, &a.DatingDrops, &a.LiveEvents)
		if err != nil {
			return nil, err
		}
	}

	return activities, nil
}

// classify dérive le type d'énergie dominant et son intensité (0..100)
func classify(a cityActivity) (model.EnergyType, int) {
	intensity := a.ActiveUsers*2 + a.LiveDrops*5 + a.LiveEvents*3
	if intensity > 100 {
		intensity = 100
	}

	switch {
	case a.ActiveUsers == 0:
		return model.EnergyDead, 0
	case a.ChaosSignal > a.PartySignal && a.ChaosSignal > a.CalmSignal:
		return model.EnergyChaos, intensity
	case a.PartySignal > a.CalmSignal:
		return model.EnergyParty, intensity
	case a.DatingDrops > 0:
		return model.EnergyRomantic, intensity
	case a.LiveEvents > a.LiveDrops:
		return model.EnergyCompetitive, intensity
	case a.CalmSignal > 0:
		return model.EnergyCalm, intensity
	default:
		return model.EnergyCreative, intensity
	}
}

// persist écrit les états calculés dans city_energy
func (w *EnergyWorker) persist(activities []cityActivity) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, a := range activities {
		energyType, intensity := classify(a)

		_, err := database.DB.Exec(ctx, `
			INSERT INTO city_energy(city, neighborhood, energy_type, intensity, active_users, events_count, updated_at)
			VALUES($1, NULL, $2, $3, $4, $5, NOW())
			ON CONFLICT (city) WHERE neighborhood IS NULL DO UPDATE SET
				energy_type = EXCLUDED.energy_type,
				intensity = EXCLUDED.intensity,
				active_users = EXCLUDED.active_users,
				events_count = EXCLUDED.events_count,
				updated_at = NOW()
		`, a.City, energyType, intensity, a.ActiveUsers, a.LiveDrops+a.LiveEvents)
		if err != nil {
			logger.Error("could not persist energy for city %s: %v", a.City, err)
		}
	}
}
