package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chirp_server/models"
	"chirp_server/socket"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// BookmarkService owns per-user bookmark sets. The set item is created
// lazily by the first ADD; set semantics make add/remove idempotent.
type BookmarkService struct {
	Dynamo Store
	Hub    *socket.Hub
	Tweets *TweetService
}

// Get returns the user's bookmark set, empty when none exists yet.
func (bs *BookmarkService) Get(ctx context.Context, userID string) (*models.BookmarkSet, error) {
	item, err := bs.Dynamo.GetItem(ctx, models.BookmarksTable, bookmarkKey(userID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return &models.BookmarkSet{UserID: userID, TweetIDs: []string{}}, nil
		}
		return nil, err
	}

	var set models.BookmarkSet
	if err := attributevalue.UnmarshalMap(item, &set); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}
	if set.TweetIDs == nil {
		set.TweetIDs = []string{}
	}
	return &set, nil
}

// Add bookmarks a tweet for the user.
func (bs *BookmarkService) Add(ctx context.Context, userID, tweetID string) (*models.BookmarkSet, error) {
	if _, err := bs.Tweets.GetTweet(ctx, tweetID); err != nil {
		return nil, err
	}

	attrs, err := bs.Dynamo.UpdateItem(ctx, models.BookmarksTable,
		"ADD tweetIds :tweet SET updatedAt = :updatedAt",
		bookmarkKey(userID),
		map[string]types.AttributeValue{
			":tweet":     &types.AttributeValueMemberSS{Value: []string{tweetID}},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		nil)
	if err != nil {
		return nil, err
	}

	if bs.Hub != nil {
		bs.Hub.Emit(userID, models.EventBookmark, map[string]string{
			"tweetId": tweetID,
			"action":  "added",
		})
	}
	return parseBookmarkSet(userID, attrs)
}

// Remove drops a tweet from the user's bookmark set.
func (bs *BookmarkService) Remove(ctx context.Context, userID, tweetID string) (*models.BookmarkSet, error) {
	attrs, err := bs.Dynamo.UpdateItem(ctx, models.BookmarksTable,
		"DELETE tweetIds :tweet SET updatedAt = :updatedAt",
		bookmarkKey(userID),
		map[string]types.AttributeValue{
			":tweet":     &types.AttributeValueMemberSS{Value: []string{tweetID}},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		nil)
	if err != nil {
		return nil, err
	}

	if bs.Hub != nil {
		bs.Hub.Emit(userID, models.EventBookmark, map[string]string{
			"tweetId": tweetID,
			"action":  "removed",
		})
	}
	return parseBookmarkSet(userID, attrs)
}

func parseBookmarkSet(userID string, attrs map[string]types.AttributeValue) (*models.BookmarkSet, error) {
	var set models.BookmarkSet
	if err := attributevalue.UnmarshalMap(attrs, &set); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}
	set.UserID = userID
	if set.TweetIDs == nil {
		set.TweetIDs = []string{}
	}
	return &set, nil
}

func bookmarkKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}
