package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes under /api/users
func RegisterUserProfileRoutes(r *mux.Router, users *services.UserService, auth *AuthMiddleware) {
	controller := controllers.NewUserProfileController(users)

	userRouter := r.PathPrefix("/api/users").Subrouter()
	userRouter.HandleFunc("/profile", auth.RequireAuth(controller.HandleUpdateProfile)).Methods("PUT")
	userRouter.HandleFunc("/{username}", auth.RequireAuth(controller.HandleGetProfile)).Methods("GET")
}
