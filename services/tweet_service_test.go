package services

import (
	"context"
	"errors"
	"testing"

	"chirp_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func marshaledTweet(t *testing.T, tweet models.Tweet) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(tweet)
	if err != nil {
		t.Fatal(err)
	}
	return item
}

func TestLikeMissingTweetIsNotFound(t *testing.T) {
	// The condition guard fails both for a missing tweet and a duplicate
	// like; a missing tweet must not surface as "already liked".
	store := &fakeStore{
		updateItemConditional: func(_, _, _ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return nil, ErrConditionFailed
		},
	}
	tweets := &TweetService{Dynamo: store}

	_, err := tweets.Like(context.Background(), "nope", "user-1")
	if !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("err = %v, want ErrTweetNotFound", err)
	}
}

func TestLikeTwiceRejected(t *testing.T) {
	existing := marshaledTweet(t, models.Tweet{TweetID: "t-1", UserID: "author", Likers: []string{"user-1"}})
	store := &fakeStore{
		getItem: func(_ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return existing, nil
		},
		updateItemConditional: func(_, _, _ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return nil, ErrConditionFailed
		},
	}
	tweets := &TweetService{Dynamo: store}

	_, err := tweets.Like(context.Background(), "t-1", "user-1")
	if !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("err = %v, want ErrAlreadyLiked", err)
	}
}

func TestUnlikeMissingTweetIsNotFound(t *testing.T) {
	store := &fakeStore{
		updateItemConditional: func(_, _, _ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return nil, ErrConditionFailed
		},
	}
	tweets := &TweetService{Dynamo: store}

	_, err := tweets.Unlike(context.Background(), "nope", "user-1")
	if !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("err = %v, want ErrTweetNotFound", err)
	}
}

func TestUnlikeWithoutLikeRejected(t *testing.T) {
	existing := marshaledTweet(t, models.Tweet{TweetID: "t-1", UserID: "author"})
	store := &fakeStore{
		getItem: func(_ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return existing, nil
		},
		updateItemConditional: func(_, _, _ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			return nil, ErrConditionFailed
		},
	}
	tweets := &TweetService{Dynamo: store}

	_, err := tweets.Unlike(context.Background(), "t-1", "user-1")
	if !errors.Is(err, ErrNotLiked) {
		t.Fatalf("err = %v, want ErrNotLiked", err)
	}
}
