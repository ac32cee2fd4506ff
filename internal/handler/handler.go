package handler

import (
	"net/http"

	"github.com/Hnibbo/hup-backend/internal/services"
	"github.com/Hnibbo/hup-backend/internal/utils"
)

// Services partagés par les handlers, injectés au démarrage
var (
	Stripe     *services.StripeService
	Cloudinary *services.CloudinaryService
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
