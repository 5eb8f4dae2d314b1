package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterFollowRoutes sets up routes under /api/followers
func RegisterFollowRoutes(r *mux.Router, follows *services.FollowService, auth *AuthMiddleware) {
	controller := controllers.NewFollowController(follows)

	followRouter := r.PathPrefix("/api/followers").Subrouter()
	followRouter.HandleFunc("/follow/{followed_user}", auth.RequireAuth(controller.HandleFollow)).Methods("POST")
	followRouter.HandleFunc("/unfollow/{followed_user}", auth.RequireAuth(controller.HandleUnfollow)).Methods("DELETE")
	followRouter.HandleFunc("/followers", auth.RequireAuth(controller.HandleFollowers)).Methods("GET")
	followRouter.HandleFunc("/following", auth.RequireAuth(controller.HandleFollowing)).Methods("GET")
}
