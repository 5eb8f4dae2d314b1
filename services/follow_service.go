package services

import (
	"context"
	"errors"
	"log"
	"time"

	"chirp_server/models"
	"chirp_server/socket"
	"chirp_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrSelfFollow       = errors.New("cannot follow yourself")
)

// FollowService owns the follow graph, stored as directed edges in an
// adjacency-list table. Followers of a user come from the reverse GSI.
type FollowService struct {
	Dynamo        Store
	Hub           *socket.Hub
	Users         *UserService
	Notifications *NotificationService
}

// Follow creates the edge follower -> followed, bumps both follow counters
// atomically and notifies the followed user.
func (fs *FollowService) Follow(ctx context.Context, follower *models.User, followedID string) error {
	if follower.UserID == followedID {
		return ErrSelfFollow
	}
	if _, err := fs.Users.GetByID(ctx, followedID); err != nil {
		return err
	}

	edge := models.FollowEdge{
		UserID:     follower.UserID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := fs.Dynamo.PutItemIfNotExists(ctx, models.FollowsTable, edge, "userId"); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return ErrAlreadyFollowing
		}
		return err
	}

	fs.adjustCounters(ctx, follower.UserID, followedID, 1)

	if fs.Notifications != nil {
		if err := fs.Notifications.Create(ctx, followedID, "@"+follower.Username+" followed you"); err != nil {
			log.Printf("⚠️ Failed to create follow notification: %v", err)
		}
	}
	if fs.Hub != nil {
		fs.Hub.Emit(followedID, models.EventFollow, map[string]string{
			"userId":   follower.UserID,
			"username": follower.Username,
		})
	}
	return nil
}

// Unfollow removes the edge and reverses the counters.
func (fs *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	err := fs.Dynamo.DeleteItemConditional(ctx, models.FollowsTable,
		map[string]types.AttributeValue{
			"userId":     &types.AttributeValueMemberS{Value: followerID},
			"followedId": &types.AttributeValueMemberS{Value: followedID},
		},
		"attribute_exists(userId)", nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return ErrNotFollowing
		}
		return err
	}

	fs.adjustCounters(ctx, followerID, followedID, -1)
	return nil
}

// Followers lists the public profiles of everyone following userID.
func (fs *FollowService) Followers(ctx context.Context, userID string) ([]map[string]interface{}, error) {
	items, err := fs.Dynamo.QueryItemsWithIndex(ctx, models.FollowsTable, models.FollowersIndex,
		"followedId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: userID},
		},
		nil, 200, true)
	if err != nil {
		return nil, err
	}
	return fs.hydrateProfiles(ctx, items, "userId"), nil
}

// Following lists the public profiles of everyone userID follows.
func (fs *FollowService) Following(ctx context.Context, userID string) ([]map[string]interface{}, error) {
	items, err := fs.Dynamo.QueryItems(ctx, models.FollowsTable,
		"userId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: userID},
		},
		nil, 200)
	if err != nil {
		return nil, err
	}
	return fs.hydrateProfiles(ctx, items, "followedId"), nil
}

func (fs *FollowService) adjustCounters(ctx context.Context, followerID, followedID string, delta int) {
	if _, err := fs.Dynamo.AddToCounter(ctx, models.UsersTable,
		map[string]types.AttributeValue{"userId": &types.AttributeValueMemberS{Value: followerID}},
		"numFollowing", delta); err != nil {
		log.Printf("⚠️ Failed to adjust numFollowing for %s: %v", followerID, err)
	}
	if _, err := fs.Dynamo.AddToCounter(ctx, models.UsersTable,
		map[string]types.AttributeValue{"userId": &types.AttributeValueMemberS{Value: followedID}},
		"numFollowers", delta); err != nil {
		log.Printf("⚠️ Failed to adjust numFollowers for %s: %v", followedID, err)
	}
}

func (fs *FollowService) hydrateProfiles(ctx context.Context, edges []map[string]types.AttributeValue, field string) []map[string]interface{} {
	profiles := make([]map[string]interface{}, 0, len(edges))
	for _, edge := range edges {
		id := utils.ExtractString(edge, field)
		if id == "" {
			continue
		}
		user, err := fs.Users.GetByID(ctx, id)
		if err != nil {
			// A dangling edge is skipped, not fatal.
			continue
		}
		profiles = append(profiles, user.PublicProfile())
	}
	return profiles
}
