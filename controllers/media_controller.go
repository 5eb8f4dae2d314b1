package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"chirp_server/services"
)

// MediaController hands out presigned S3 URLs for media attachments.
type MediaController struct {
	Media *services.MediaService
}

func NewMediaController(media *services.MediaService) *MediaController {
	return &MediaController{Media: media}
}

// HandleUploadURL returns a presigned upload URL for a new media file
func (c *MediaController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.FileName == "" || request.FileType == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: fileName or fileType")
		return
	}

	url, key, err := c.Media.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		log.Printf("❌ Failed to presign upload: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "key": key})
}

// HandleReadURL returns a presigned read URL for an existing media key
func (c *MediaController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Missing required query parameter: key")
		return
	}

	url, err := c.Media.GenerateReadURL(r.Context(), key)
	if err != nil {
		log.Printf("❌ Failed to presign read: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate read URL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": url})
}
