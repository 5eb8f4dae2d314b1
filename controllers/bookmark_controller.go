package controllers

import (
	"errors"
	"log"
	"net/http"

	"chirp_server/services"

	"github.com/gorilla/mux"
)

// BookmarkController handles the caller's bookmark set.
type BookmarkController struct {
	Bookmarks *services.BookmarkService
}

func NewBookmarkController(bookmarks *services.BookmarkService) *BookmarkController {
	return &BookmarkController{Bookmarks: bookmarks}
}

// HandleGetBookmarks returns the caller's bookmarked tweet ids
func (c *BookmarkController) HandleGetBookmarks(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	set, err := c.Bookmarks.Get(r.Context(), user.UserID)
	if err != nil {
		log.Printf("❌ Failed to fetch bookmarks: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": set.TweetIDs})
}

// HandleAddBookmark bookmarks a tweet
func (c *BookmarkController) HandleAddBookmark(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweetID := mux.Vars(r)["tweet_id"]

	set, err := c.Bookmarks.Add(r.Context(), user.UserID, tweetID)
	if err != nil {
		if errors.Is(err, services.ErrTweetNotFound) {
			writeError(w, http.StatusNotFound, "Tweet not found")
			return
		}
		log.Printf("❌ Failed to add bookmark: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add bookmark")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": set.TweetIDs})
}

// HandleDeleteBookmark removes a tweet from the caller's bookmarks
func (c *BookmarkController) HandleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweetID := mux.Vars(r)["tweet_id"]

	set, err := c.Bookmarks.Remove(r.Context(), user.UserID, tweetID)
	if err != nil {
		log.Printf("❌ Failed to remove bookmark: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to remove bookmark")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookmarks": set.TweetIDs})
}
