package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"chirp_server/services"
)

// AuthController handles signup, login and the current-user lookup.
type AuthController struct {
	Users  *services.UserService
	Tokens *services.TokenService
}

func NewAuthController(users *services.UserService, tokens *services.TokenService) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

// HandleSignup registers a new user and returns a bearer token
func (c *AuthController) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email       string `json:"email"`
		Username    string `json:"username"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if request.Email == "" || request.Username == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: email, username, or password")
		return
	}
	if !strings.Contains(request.Email, "@") {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(request.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := c.Users.Signup(r.Context(), request.Email, request.Username, request.Password, request.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "Username already taken")
		default:
			log.Printf("❌ Signup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	token, err := c.Tokens.Issue(user.UserID, user.Username)
	if err != nil {
		log.Printf("❌ Token issue failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user.PublicProfile(),
		"token": token,
	})
}

// HandleLogin verifies credentials and returns a bearer token
func (c *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Email == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: email or password")
		return
	}

	user, err := c.Users.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("❌ Login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := c.Tokens.Issue(user.UserID, user.Username)
	if err != nil {
		log.Printf("❌ Token issue failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user.PublicProfile(),
		"token": token,
	})
}

// HandleMe returns the authenticated user's own profile
func (c *AuthController) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := AuthedUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.PublicProfile()})
}
