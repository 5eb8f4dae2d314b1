package controllers

import (
	"errors"
	"log"
	"net/http"

	"chirp_server/services"

	"github.com/gorilla/mux"
)

// FollowController handles the follow graph endpoints.
type FollowController struct {
	Follows *services.FollowService
}

func NewFollowController(follows *services.FollowService) *FollowController {
	return &FollowController{Follows: follows}
}

// HandleFollow creates a follow edge to the target user
func (c *FollowController) HandleFollow(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	followedID := mux.Vars(r)["followed_user"]

	if err := c.Follows.Follow(r.Context(), user, followedID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrSelfFollow), errors.Is(err, services.ErrAlreadyFollowing):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("❌ Follow failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to follow user")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Now following"})
}

// HandleUnfollow removes the follow edge to the target user
func (c *FollowController) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	followedID := mux.Vars(r)["followed_user"]

	if err := c.Follows.Unfollow(r.Context(), user.UserID, followedID); err != nil {
		if errors.Is(err, services.ErrNotFollowing) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("❌ Unfollow failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Unfollowed"})
}

// HandleFollowers lists the caller's followers
func (c *FollowController) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	profiles, err := c.Follows.Followers(r.Context(), user.UserID)
	if err != nil {
		log.Printf("❌ Failed to fetch followers: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch followers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"followers": profiles})
}

// HandleFollowing lists who the caller follows
func (c *FollowController) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	profiles, err := c.Follows.Following(r.Context(), user.UserID)
	if err != nil {
		log.Printf("❌ Failed to fetch following: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch following")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"following": profiles})
}
