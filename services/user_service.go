package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chirp_server/models"
	"chirp_server/socket"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService owns identity, credentials and profile as a single aggregate.
// Email/username uniqueness is enforced with claim items living in the same
// table, written with attribute_not_exists conditions.
type UserService struct {
	Dynamo Store
	Hub    *socket.Hub
}

// uniquenessClaim reserves an email or username for a user.
type uniquenessClaim struct {
	UserID  string `dynamodbav:"userId"`
	OwnerID string `dynamodbav:"ownerId"`
}

// Signup registers a new user. Both the email and the username must be
// unclaimed; a half-claimed signup rolls its first claim back.
func (us *UserService) Signup(ctx context.Context, email, username, password, displayName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New().String()

	emailClaim := uniquenessClaim{UserID: models.EmailClaimPrefix + email, OwnerID: userID}
	if err := us.Dynamo.PutItemIfNotExists(ctx, models.UsersTable, emailClaim, "userId"); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	usernameClaim := uniquenessClaim{UserID: models.UsernameClaimPrefix + strings.ToLower(username), OwnerID: userID}
	if err := us.Dynamo.PutItemIfNotExists(ctx, models.UsersTable, usernameClaim, "userId"); err != nil {
		// Release the email claim so the address stays usable.
		us.releaseClaim(ctx, emailClaim.UserID)
		if errors.Is(err, ErrConditionFailed) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	user := models.User{
		UserID:        userID,
		Email:         email,
		Username:      username,
		PasswordHash:  string(hash),
		DisplayName:   displayName,
		ProfileBucket: models.UserProfileBucket,
		UsernameLower: strings.ToLower(username),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		// A claim without an account behind it would block the email and
		// username forever; release both so the signup can be retried.
		us.releaseClaim(ctx, emailClaim.UserID)
		us.releaseClaim(ctx, usernameClaim.UserID)
		return nil, err
	}

	log.Printf("✅ User %s signed up as @%s", userID, username)
	return &user, nil
}

// Login verifies credentials and returns the user.
func (us *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	ownerID, err := us.resolveClaim(ctx, models.EmailClaimPrefix+email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := us.GetByID(ctx, ownerID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID fetches a user by primary identifier.
func (us *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

// GetByUsername resolves a username claim to its user.
func (us *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ownerID, err := us.resolveClaim(ctx, models.UsernameClaimPrefix+strings.ToLower(username))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return us.GetByID(ctx, ownerID)
}

// ProfileUpdate carries the mutable profile fields. Nil pointers are left
// untouched.
type ProfileUpdate struct {
	Username     *string `json:"username,omitempty"`
	DisplayName  *string `json:"displayName,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Bio          *string `json:"bio,omitempty"`
}

// UpdateProfile applies a partial profile update. A username change claims
// the new name before releasing the old one. Changes that other clients
// render are fanned out with minimal payloads.
func (us *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var sets []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}

	oldUsername := ""
	if update.Username != nil && *update.Username != user.Username {
		newClaim := uniquenessClaim{UserID: models.UsernameClaimPrefix + strings.ToLower(*update.Username), OwnerID: userID}
		if err := us.Dynamo.PutItemIfNotExists(ctx, models.UsersTable, newClaim, "userId"); err != nil {
			if errors.Is(err, ErrConditionFailed) {
				return nil, ErrUsernameTaken
			}
			return nil, err
		}
		oldUsername = user.Username
		sets = append(sets, "#username = :username", "usernameLower = :usernameLower")
		names["#username"] = "username"
		values[":username"] = &types.AttributeValueMemberS{Value: *update.Username}
		values[":usernameLower"] = &types.AttributeValueMemberS{Value: strings.ToLower(*update.Username)}
	}
	if update.DisplayName != nil {
		sets = append(sets, "displayName = :displayName")
		values[":displayName"] = &types.AttributeValueMemberS{Value: *update.DisplayName}
	}
	if update.ProfileImage != nil {
		sets = append(sets, "profileImage = :profileImage")
		values[":profileImage"] = &types.AttributeValueMemberS{Value: *update.ProfileImage}
	}
	if update.Bio != nil {
		sets = append(sets, "bio = :bio")
		values[":bio"] = &types.AttributeValueMemberS{Value: *update.Bio}
	}

	if len(sets) == 0 {
		return user, nil
	}

	sets = append(sets, "updatedAt = :updatedAt")
	values[":updatedAt"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}

	attrs, err := us.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET "+strings.Join(sets, ", "),
		map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		values, names)
	if err != nil {
		return nil, err
	}

	if oldUsername != "" {
		us.releaseClaim(ctx, models.UsernameClaimPrefix+strings.ToLower(oldUsername))
	}

	var updated models.User
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated user: %w", err)
	}

	if us.Hub != nil {
		if update.Username != nil && oldUsername != "" {
			us.Hub.Emit("", models.EventUpdateUsername, map[string]string{
				"userId":   userID,
				"username": updated.Username,
			})
		}
		if update.ProfileImage != nil {
			us.Hub.Emit("", models.EventUpdateProfileImage, map[string]string{
				"userId":       userID,
				"profileImage": updated.ProfileImage,
			})
		}
	}

	return &updated, nil
}

// releaseClaim drops a uniqueness claim item. Best effort: a leaked claim is
// cleaned up the next time its owner releases it.
func (us *UserService) releaseClaim(ctx context.Context, claimKey string) {
	_ = us.Dynamo.DeleteItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: claimKey},
	})
}

func (us *UserService) resolveClaim(ctx context.Context, claimKey string) (string, error) {
	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: claimKey},
	})
	if err != nil {
		return "", err
	}

	var claim uniquenessClaim
	if err := attributevalue.UnmarshalMap(item, &claim); err != nil {
		return "", fmt.Errorf("failed to parse claim: %w", err)
	}
	if claim.OwnerID == "" {
		return "", ErrItemNotFound
	}
	return claim.OwnerID, nil
}
