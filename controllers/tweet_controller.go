package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chirp_server/services"

	"github.com/gorilla/mux"
)

// TweetController handles tweets, feeds and polls.
type TweetController struct {
	Tweets *services.TweetService
}

func NewTweetController(tweets *services.TweetService) *TweetController {
	return &TweetController{Tweets: tweets}
}

// HandleCreateTweet stores a new tweet (optionally with media or a poll)
func (c *TweetController) HandleCreateTweet(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	var input services.CreateTweetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Plain tweet creation never sets a retweet reference.
	input.RetweetOf = ""

	tweet, err := c.Tweets.CreateTweet(r.Context(), user, input)
	if err != nil {
		c.writeTweetError(w, err, "Failed to create tweet")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"tweet": tweet})
}

// HandleRetweet creates a retweet of an existing tweet
func (c *TweetController) HandleRetweet(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweetID := mux.Vars(r)["tweetId"]

	var request struct {
		Content string `json:"content"`
	}
	// An empty body means a bare retweet.
	_ = json.NewDecoder(r.Body).Decode(&request)

	tweet, err := c.Tweets.CreateTweet(r.Context(), user, services.CreateTweetInput{
		Content:   request.Content,
		RetweetOf: tweetID,
	})
	if err != nil {
		c.writeTweetError(w, err, "Failed to retweet")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"tweet": tweet})
}

// HandleGetTweet fetches one tweet by id
func (c *TweetController) HandleGetTweet(w http.ResponseWriter, r *http.Request) {
	tweet, err := c.Tweets.GetTweet(r.Context(), mux.Vars(r)["tweetId"])
	if err != nil {
		c.writeTweetError(w, err, "Failed to fetch tweet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tweet": tweet})
}

// HandleLiveFeed returns one page of the global timeline
func (c *TweetController) HandleLiveFeed(w http.ResponseWriter, r *http.Request) {
	tweets, cursor, err := c.Tweets.LiveFeed(r.Context(), r.URL.Query().Get("last_tweet_id"))
	if err != nil {
		c.writeTweetError(w, err, "Failed to fetch feed")
		return
	}
	writeJSON(w, http.StatusOK, feedEnvelope(tweets, cursor))
}

// HandleFollowedFeed returns one page of tweets from followed accounts
func (c *TweetController) HandleFollowedFeed(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweets, cursor, err := c.Tweets.FollowedFeed(r.Context(), user.UserID, r.URL.Query().Get("last_tweet_id"))
	if err != nil {
		c.writeTweetError(w, err, "Failed to fetch feed")
		return
	}
	writeJSON(w, http.StatusOK, feedEnvelope(tweets, cursor))
}

// HandleLike adds the caller to a tweet's likers
func (c *TweetController) HandleLike(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweet, err := c.Tweets.Like(r.Context(), mux.Vars(r)["tweetId"], user.UserID)
	if err != nil {
		c.writeTweetError(w, err, "Failed to like tweet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tweet": tweet})
}

// HandleUnlike removes the caller from a tweet's likers
func (c *TweetController) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	tweet, err := c.Tweets.Unlike(r.Context(), mux.Vars(r)["tweetId"], user.UserID)
	if err != nil {
		c.writeTweetError(w, err, "Failed to unlike tweet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tweet": tweet})
}

// HandleView bumps a tweet's view counter
func (c *TweetController) HandleView(w http.ResponseWriter, r *http.Request) {
	if err := c.Tweets.AddView(r.Context(), mux.Vars(r)["tweetId"]); err != nil {
		c.writeTweetError(w, err, "Failed to record view")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "View recorded"})
}

// HandleVotePoll records one poll vote
func (c *TweetController) HandleVotePoll(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)

	var request struct {
		TweetID     string `json:"tweetId"`
		OptionIndex *int   `json:"optionIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.TweetID == "" || request.OptionIndex == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: tweetId or optionIndex")
		return
	}

	tweet, err := c.Tweets.VotePoll(r.Context(), request.TweetID, user.UserID, *request.OptionIndex)
	if err != nil {
		c.writeTweetError(w, err, "Failed to vote")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tweet": tweet})
}

func feedEnvelope(tweets interface{}, cursor string) map[string]interface{} {
	envelope := map[string]interface{}{
		"tweets":        tweets,
		"last_tweet_id": nil,
	}
	if cursor != "" {
		envelope["last_tweet_id"] = cursor
	}
	return envelope
}

func (c *TweetController) writeTweetError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, services.ErrTweetNotFound):
		writeError(w, http.StatusNotFound, "Tweet not found")
	case errors.Is(err, services.ErrMissingContent),
		errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidPoll),
		errors.Is(err, services.ErrCannotRetweet),
		errors.Is(err, services.ErrBadPollOption),
		errors.Is(err, services.ErrNoPoll),
		errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotLiked),
		errors.Is(err, services.ErrPollClosed),
		errors.Is(err, services.ErrAlreadyVoted):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("❌ Tweet operation failed: %v", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
