package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up presigned-URL routes under /api/media
func RegisterMediaRoutes(r *mux.Router, media *services.MediaService, auth *AuthMiddleware) {
	controller := controllers.NewMediaController(media)

	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.HandleFunc("/upload-url", auth.RequireAuth(controller.HandleUploadURL)).Methods("POST")
	mediaRouter.HandleFunc("/read-url", auth.RequireAuth(controller.HandleReadURL)).Methods("GET")
}
