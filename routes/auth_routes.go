package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up signup/login under /api/auth
func RegisterAuthRoutes(r *mux.Router, users *services.UserService, tokens *services.TokenService, auth *AuthMiddleware) {
	controller := controllers.NewAuthController(users, tokens)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signup", controller.HandleSignup).Methods("POST")
	authRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	authRouter.HandleFunc("/me", auth.RequireAuth(controller.HandleMe)).Methods("GET")
}
