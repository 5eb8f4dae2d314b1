package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chirp_server/services"

	"github.com/gorilla/mux"
)

// CommentController handles comment CRUD and likes.
type CommentController struct {
	Comments      *services.CommentService
	Notifications *services.NotificationService
}

func NewCommentController(comments *services.CommentService, notifications *services.NotificationService) *CommentController {
	return &CommentController{Comments: comments, Notifications: notifications}
}

// HandleCreateComment posts a comment on a tweet
func (c *CommentController) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweetID := mux.Vars(r)["tweetId"]

	var request struct {
		Content string `json:"content"`
		Media   string `json:"media"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := c.Comments.CreateComment(r.Context(), user, tweetID, request.Content, request.Media, c.Notifications)
	if err != nil {
		c.writeCommentError(w, err, "Failed to post comment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"comment": comment})
}

// HandleGetComments fetches a tweet's comments
func (c *CommentController) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := c.Comments.GetComments(r.Context(), mux.Vars(r)["tweetId"])
	if err != nil {
		c.writeCommentError(w, err, "Failed to fetch comments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// HandleUpdateComment edits a comment's content
func (c *CommentController) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	commentID := mux.Vars(r)["commentId"]

	var request struct {
		TweetID string `json:"tweetId"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.TweetID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: tweetId")
		return
	}

	comment, err := c.Comments.UpdateComment(r.Context(), request.TweetID, commentID, user.UserID, request.Content)
	if err != nil {
		c.writeCommentError(w, err, "Failed to update comment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comment": comment})
}

// HandleDeleteComment removes the caller's own comment
func (c *CommentController) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	commentID := mux.Vars(r)["commentId"]

	tweetID := r.URL.Query().Get("tweet_id")
	if tweetID == "" {
		writeError(w, http.StatusBadRequest, "Missing required query parameter: tweet_id")
		return
	}

	if err := c.Comments.DeleteComment(r.Context(), tweetID, commentID, user.UserID); err != nil {
		c.writeCommentError(w, err, "Failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// HandleLikeComment toggles the caller's like on a comment
func (c *CommentController) HandleLikeComment(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	commentID := mux.Vars(r)["commentId"]

	var request struct {
		TweetID string `json:"tweetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.TweetID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: tweetId")
		return
	}

	comment, liked, err := c.Comments.ToggleLike(r.Context(), request.TweetID, commentID, user.UserID)
	if err != nil {
		c.writeCommentError(w, err, "Failed to update like")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"comment": comment, "liked": liked})
}

func (c *CommentController) writeCommentError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, services.ErrTweetNotFound):
		writeError(w, http.StatusNotFound, "Tweet not found")
	case errors.Is(err, services.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrNotCommentOwner):
		writeError(w, http.StatusForbidden, "Comment belongs to another user")
	case errors.Is(err, services.ErrMissingContent), errors.Is(err, services.ErrContentTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("❌ Comment operation failed: %v", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
