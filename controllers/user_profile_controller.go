package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chirp_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles profile reads and updates.
type UserProfileController struct {
	Users *services.UserService
}

func NewUserProfileController(users *services.UserService) *UserProfileController {
	return &UserProfileController{Users: users}
}

// HandleGetProfile fetches a public profile by username
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := c.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("❌ Failed to fetch profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.PublicProfile()})
}

// HandleUpdateProfile applies a partial update to the caller's profile
func (c *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.Username != nil && *update.Username == "" {
		writeError(w, http.StatusBadRequest, "Username cannot be empty")
		return
	}

	updated, err := c.Users.UpdateProfile(r.Context(), user.UserID, update)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}
		log.Printf("❌ Failed to update profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": updated.PublicProfile()})
}
