package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterTweetRoutes sets up routes for tweets, feeds and polls under /api/tweets
func RegisterTweetRoutes(r *mux.Router, tweets *services.TweetService, auth *AuthMiddleware) {
	controller := controllers.NewTweetController(tweets)

	tweetRouter := r.PathPrefix("/api/tweets").Subrouter()
	tweetRouter.HandleFunc("/livefeed", auth.RequireAuth(controller.HandleLiveFeed)).Methods("GET")
	tweetRouter.HandleFunc("/followedfeed", auth.RequireAuth(controller.HandleFollowedFeed)).Methods("GET")
	tweetRouter.HandleFunc("/tweet", auth.RequireAuth(controller.HandleCreateTweet)).Methods("POST")
	tweetRouter.HandleFunc("/poll/vote", auth.RequireAuth(controller.HandleVotePoll)).Methods("PUT")
	tweetRouter.HandleFunc("/like/{tweetId}", auth.RequireAuth(controller.HandleLike)).Methods("POST")
	tweetRouter.HandleFunc("/unlike/{tweetId}", auth.RequireAuth(controller.HandleUnlike)).Methods("POST")
	tweetRouter.HandleFunc("/retweet/{tweetId}", auth.RequireAuth(controller.HandleRetweet)).Methods("POST")
	tweetRouter.HandleFunc("/view/{tweetId}", auth.RequireAuth(controller.HandleView)).Methods("POST")
	tweetRouter.HandleFunc("/{tweetId}", auth.RequireAuth(controller.HandleGetTweet)).Methods("GET")
}
