package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"chirp_server/services"
)

// NotificationController handles the notification lifecycle endpoints.
type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// HandleGetNotifications fetches the caller's notifications; the fetch
// itself marks unread ones as read
func (c *NotificationController) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	notifications, err := c.Notifications.GetForRecipient(r.Context(), user.UserID)
	if err != nil {
		log.Printf("❌ Failed to fetch notifications: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// HandleCreateNotification creates a notification for a recipient
func (c *NotificationController) HandleCreateNotification(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RecipientID string `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.RecipientID == "" || request.Content == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: recipientId or content")
		return
	}

	if err := c.Notifications.Create(r.Context(), request.RecipientID, request.Content); err != nil {
		log.Printf("❌ Failed to create notification: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Notification created"})
}

// HandleBulkDelete removes the given notifications; unread ids are left
// untouched
func (c *NotificationController) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	var request struct {
		NotificationIDs []string `json:"notificationIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(request.NotificationIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required field: notificationIds")
		return
	}

	deleted, err := c.Notifications.BulkDelete(r.Context(), user.UserID, request.NotificationIDs)
	if err != nil {
		log.Printf("❌ Failed to delete notifications: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}
