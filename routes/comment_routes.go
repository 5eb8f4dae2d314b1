package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterCommentRoutes sets up routes for comment operations under /api/comments
func RegisterCommentRoutes(r *mux.Router, comments *services.CommentService, notifications *services.NotificationService, auth *AuthMiddleware) {
	controller := controllers.NewCommentController(comments, notifications)

	commentRouter := r.PathPrefix("/api/comments").Subrouter()
	commentRouter.HandleFunc("/get/{tweetId}", auth.RequireAuth(controller.HandleGetComments)).Methods("GET")
	commentRouter.HandleFunc("/like/{commentId}", auth.RequireAuth(controller.HandleLikeComment)).Methods("POST")
	commentRouter.HandleFunc("/{tweetId}", auth.RequireAuth(controller.HandleCreateComment)).Methods("POST")
	commentRouter.HandleFunc("/{commentId}", auth.RequireAuth(controller.HandleUpdateComment)).Methods("PUT")
	commentRouter.HandleFunc("/{commentId}", auth.RequireAuth(controller.HandleDeleteComment)).Methods("DELETE")
}
