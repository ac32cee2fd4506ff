package api

import (
	"net/http"

	"github.com/Hnibbo/hup-backend/internal/handler"
	"github.com/Hnibbo/hup-backend/internal/middleware"
	"github.com/Hnibbo/hup-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/me", handler.GetMe).Methods(http.MethodGet)

	// Users
	r.HandleFunc("/users/{id}", handler.GetUserById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/me", handler.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/me", handler.DeleteAccount).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/users/me/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// City challenges
	// Le feed est accessible sans session : user_joined tombe alors à FALSE
	r.HandleFunc("/challenges", handler.GetCityChallenges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/mine", handler.GetUserChallenges).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}", handler.GetChallengeById).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}/leaderboard", handler.GetChallengeLeaderboard).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/{id}/join", handler.JoinChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/leave", handler.LeaveChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges", handler.CreateChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}", handler.UpdateChallenge).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/challenges/{id}", handler.DeleteChallenge).Methods(http.MethodDelete)

	// Moment drops
	r.HandleFunc("/drops", handler.GetMomentDrops).Methods(http.MethodGet)
	r.HandleFunc("/drops/{id}", handler.GetDropById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/drops", handler.CreateMomentDrop).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/drops/{id}/join", handler.JoinDrop).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/drops/{id}/leave", handler.LeaveDrop).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/drops/{id}/share", handler.ShareDrop).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/drops/{id}", handler.DeleteDrop).Methods(http.MethodDelete)

	// Social signals
	r.HandleFunc("/signals/catalog", handler.GetSignalCatalog).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/signals/nearby", handler.GetNearbySignals).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/signals", handler.GetMySignal).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/signals", handler.UpdateSignal).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/signals", handler.ClearSignal).Methods(http.MethodDelete)

	// Social roles
	r.HandleFunc("/roles/definitions", handler.GetRoleDefinitions).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/roles/me", handler.GetMyRole).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/roles/progress", handler.UpdateRoleProgress).Methods(http.MethodPost)

	// City energy
	r.HandleFunc("/energy", handler.GetCityEnergy).Methods(http.MethodGet)

	// Loneliness interrupter
	authenticatedRoutes.HandleFunc("/loneliness/check", handler.CheckLoneliness).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/loneliness/response", handler.RecordInterventionResponse).Methods(http.MethodPost)

	// Memory capsules
	authenticatedRoutes.HandleFunc("/capsules", handler.GetMemoryCapsules).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/capsules", handler.CreateMemoryCapsule).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/capsules/{id}", handler.GetCapsuleById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/capsules/{id}", handler.UpdateMemoryCapsule).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/capsules/{id}", handler.DeleteMemoryCapsule).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/capsules/{id}/media", handler.UploadCapsuleMedia).Methods(http.MethodPost)

	// Billing
	r.HandleFunc("/billing/plans", handler.GetSubscriptionPlans).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/billing/subscription", handler.GetSubscriptionStatus).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/billing/portal", handler.CreatePortalSession).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/billing/test", handler.TestBillingConnection).Methods(http.MethodPost)

	// Admin
	authenticatedRoutes.HandleFunc("/admin/stats", handler.GetAdminStats).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/admin/users", handler.GetAdminUsers).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/admin/plans", handler.CreateSubscriptionPlan).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/admin/plans/{id}", handler.UpdateSubscriptionPlan).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/admin/plans/{id}/toggle", handler.ToggleSubscriptionPlan).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/admin/plans/{id}", handler.DeleteSubscriptionPlan).Methods(http.MethodDelete)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
