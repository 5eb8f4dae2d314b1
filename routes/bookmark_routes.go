package routes

import (
	"chirp_server/controllers"
	"chirp_server/services"

	"github.com/gorilla/mux"
)

// RegisterBookmarkRoutes sets up routes under /api/bookmarks
func RegisterBookmarkRoutes(r *mux.Router, bookmarks *services.BookmarkService, auth *AuthMiddleware) {
	controller := controllers.NewBookmarkController(bookmarks)

	bookmarkRouter := r.PathPrefix("/api/bookmarks").Subrouter()
	bookmarkRouter.HandleFunc("", auth.RequireAuth(controller.HandleGetBookmarks)).Methods("GET")
	bookmarkRouter.HandleFunc("/add/{tweet_id}", auth.RequireAuth(controller.HandleAddBookmark)).Methods("POST")
	bookmarkRouter.HandleFunc("/delete/{tweet_id}", auth.RequireAuth(controller.HandleDeleteBookmark)).Methods("POST")
}
