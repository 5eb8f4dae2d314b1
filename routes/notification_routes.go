package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notifications *services.NotificationService, auth *AuthMiddleware) {
	controller := controllers.NewNotificationController(notifications)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("", auth.RequireAuth(controller.HandleGetNotifications)).Methods("GET")
	notificationRouter.HandleFunc("/create", auth.RequireAuth(controller.HandleCreateNotification)).Methods("POST")
	notificationRouter.HandleFunc("/delete", auth.RequireAuth(controller.HandleBulkDelete)).Methods("PUT")
}
