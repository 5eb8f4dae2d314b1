package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chirp_server/models"
)

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestSignupReleasesBothClaimsWhenUserWriteFails(t *testing.T) {
	store := &fakeStore{
		putItem: func(_ string, item interface{}) error {
			if _, ok := item.(models.User); ok {
				return errors.New("table throttled")
			}
			return nil
		},
	}
	users := &UserService{Dynamo: store}

	_, err := users.Signup(context.Background(), "alice@example.com", "Alice", "password123", "Alice")
	if err == nil {
		t.Fatal("signup must fail when the user record write fails")
	}

	// Neither the email nor the username may stay claimed without an
	// account behind it, or every retry reports "already taken".
	if !containsKey(store.deletedKeys, models.EmailClaimPrefix+"alice@example.com") {
		t.Fatalf("email claim not released, deletes: %v", store.deletedKeys)
	}
	if !containsKey(store.deletedKeys, models.UsernameClaimPrefix+"alice") {
		t.Fatalf("username claim not released, deletes: %v", store.deletedKeys)
	}
}

func TestSignupReleasesEmailClaimWhenUsernameTaken(t *testing.T) {
	store := &fakeStore{
		putItemIfNotExists: func(_ string, item interface{}) error {
			claim, ok := item.(uniquenessClaim)
			if ok && strings.HasPrefix(claim.UserID, models.UsernameClaimPrefix) {
				return ErrConditionFailed
			}
			return nil
		},
	}
	users := &UserService{Dynamo: store}

	_, err := users.Signup(context.Background(), "bob@example.com", "bob", "password123", "Bob")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	if !containsKey(store.deletedKeys, models.EmailClaimPrefix+"bob@example.com") {
		t.Fatalf("email claim not released, deletes: %v", store.deletedKeys)
	}
}
