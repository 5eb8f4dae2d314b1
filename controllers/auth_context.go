package controllers

import (
	"context"
	"net/http"

	"chirp_server/models"
)

type userContextKey struct{}

// WithUser attaches the authenticated user to the request context.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey{}, user))
}

// AuthedUser returns the authenticated user, nil on unauthenticated routes.
func AuthedUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey{}).(*models.User)
	return user
}
