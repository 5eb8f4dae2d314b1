package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterSearchRoutes sets up routes under /api/search
func RegisterSearchRoutes(r *mux.Router, search *services.SearchService, auth *AuthMiddleware) {
	controller := controllers.NewSearchController(search)

	searchRouter := r.PathPrefix("/api/search").Subrouter()
	searchRouter.HandleFunc("/username/{username}", auth.RequireAuth(controller.HandleSearchUsername)).Methods("GET")
	searchRouter.HandleFunc("/hashtag/{hashtag}", auth.RequireAuth(controller.HandleSearchHashtag)).Methods("GET")
}
