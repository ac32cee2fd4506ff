package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Hnibbo/hup-backend/internal/database"
	model "github.com/Hnibbo/hup-backend/internal/models"
	"github.com/Hnibbo/hup-backend/internal/scanner"
	"github.com/Hnibbo/hup-backend/internal/utils"
)

// GetCityEnergy retourne l'état énergétique d'une ville, quartier par quartier
// Une ville jamais calculée reçoit un état synthétique calme plutôt qu'un 404 :
// le feed affiche toujours quelque chose
func GetCityEnergy(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	ctx := context.Background()
	rows, err := database.DB.Query(ctx, `
		SELECT id, city, neighborhood, energy_type, intensity, active_users, events_count, updated_at
		FROM city_energy
		WHERE city = $1
		ORDER BY intensity DESC
	`, city)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query city energy", err)
		return
	}
	defer rows.Close()

	states := []model.CityEnergyState{}
	for rows.Next() {
		state, err := scanner.ScanCityEnergyState(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan energy row", err)
			return
		}
		states = append(states, *state)
	}

	if len(states) == 0 {
		states = append(states, model.CityEnergyState{
			City:       city,
			EnergyType: model.EnergyCalm,
			Intensity:  30,
			UpdatedAt:  time.Now(),
		})
	}

	utils.Success(w, states)
}
