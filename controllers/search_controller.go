package controllers

import (
	"log"
	"net/http"

	"chirp_server/services"

	"github.com/gorilla/mux"
)

// SearchController handles username and hashtag search.
type SearchController struct {
	Search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{Search: search}
}

// HandleSearchUsername finds users by username prefix
func (c *SearchController) HandleSearchUsername(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	results, err := c.Search.SearchUsername(r.Context(), username)
	if err != nil {
		log.Printf("❌ Username search failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// HandleSearchHashtag finds the newest tweets carrying a hashtag
func (c *SearchController) HandleSearchHashtag(w http.ResponseWriter, r *http.Request) {
	hashtag := mux.Vars(r)["hashtag"]
	if hashtag == "" {
		writeError(w, http.StatusBadRequest, "hashtag is required")
		return
	}

	results, err := c.Search.SearchHashtag(r.Context(), hashtag)
	if err != nil {
		log.Printf("❌ Hashtag search failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
