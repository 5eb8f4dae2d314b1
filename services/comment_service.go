package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"chirp_server/models"
	"chirp_server/socket"
	"chirp_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("comment belongs to another user")
)

// CommentService owns comments under tweets. Reads go through the
// cache-aside accessor with a 60s TTL; the mutation paths invalidate the
// tweet's entry so a commenter sees their own comment immediately.
type CommentService struct {
	Dynamo Store
	Cache  *CacheService
	Hub    *socket.Hub
	Tweets *TweetService
}

func commentsFilter(tweetID string) map[string]string {
	return map[string]string{"resource": "comments", "tweetId": tweetID}
}

// GetComments returns a tweet's comments, oldest first.
func (cs *CommentService) GetComments(ctx context.Context, tweetID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := cs.Cache.Fetch(ctx, commentsFilter(tweetID), models.CommentsCacheTTL, &comments,
		func(ctx context.Context) (interface{}, error) {
			items, err := cs.Dynamo.QueryItems(ctx, models.CommentsTable,
				"tweetId = :tweetId",
				map[string]types.AttributeValue{
					":tweetId": &types.AttributeValueMemberS{Value: tweetID},
				},
				nil, 200)
			if err != nil {
				return nil, err
			}

			loaded := make([]models.Comment, 0, len(items))
			if err := attributevalue.UnmarshalListOfMaps(items, &loaded); err != nil {
				return nil, fmt.Errorf("failed to parse comments: %w", err)
			}
			sort.SliceStable(loaded, func(i, j int) bool {
				return loaded[i].CommentID < loaded[j].CommentID
			})
			return loaded, nil
		})
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// CreateComment stores a comment with a denormalized author snapshot, bumps
// the tweet's comment counter atomically, notifies the tweet's author and
// fans out the change.
func (cs *CommentService) CreateComment(ctx context.Context, author *models.User, tweetID, content, media string, notifications *NotificationService) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	if len([]rune(content)) > models.MaxTweetLength {
		return nil, ErrContentTooLong
	}

	tweet, err := cs.Tweets.GetTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := models.Comment{
		TweetID:     tweetID,
		CommentID:   utils.SortKey(now, uuid.New().String()),
		UserID:      author.UserID,
		AuthorName:  author.Username,
		AuthorImage: author.ProfileImage,
		Content:     content,
		Media:       media,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}

	if err := cs.Dynamo.PutItem(ctx, models.CommentsTable, comment); err != nil {
		return nil, err
	}

	if _, err := cs.Dynamo.AddToCounter(ctx, models.TweetsTable, tweetKey(tweetID), "numComments", 1); err != nil {
		return nil, err
	}

	cs.Cache.Invalidate(ctx, commentsFilter(tweetID))

	if cs.Hub != nil {
		cs.Hub.Emit(tweet.UserID, models.EventCommentAdded, map[string]string{
			"tweetId":    tweetID,
			"commentId":  comment.CommentID,
			"authorName": comment.AuthorName,
			"content":    comment.Content,
		})
		cs.Hub.Emit("", models.EventIncrementCommentCount, map[string]string{
			"tweetId": tweetID,
		})
	}

	if notifications != nil && tweet.UserID != author.UserID {
		if err := notifications.Create(ctx, tweet.UserID, "@"+author.Username+" commented on your tweet"); err != nil {
			// The comment itself succeeded; a lost notification is tolerable.
			return &comment, nil
		}
	}

	return &comment, nil
}

// UpdateComment edits a comment's content. Only the author may edit, and
// only the content mutates.
func (cs *CommentService) UpdateComment(ctx context.Context, tweetID, commentID, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	if len([]rune(content)) > models.MaxTweetLength {
		return nil, ErrContentTooLong
	}

	attrs, err := cs.Dynamo.UpdateItemConditional(ctx, models.CommentsTable,
		"SET content = :content, updatedAt = :updatedAt",
		"userId = :me",
		commentKey(tweetID, commentID),
		map[string]types.AttributeValue{
			":content":   &types.AttributeValueMemberS{Value: content},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
			":me":        &types.AttributeValueMemberS{Value: userID},
		},
		nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, ErrNotCommentOwner
		}
		return nil, err
	}

	cs.Cache.Invalidate(ctx, commentsFilter(tweetID))

	var comment models.Comment
	if err := attributevalue.UnmarshalMap(attrs, &comment); err != nil {
		return nil, fmt.Errorf("failed to parse comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment removes the author's own comment and decrements the tweet's
// counter.
func (cs *CommentService) DeleteComment(ctx context.Context, tweetID, commentID, userID string) error {
	err := cs.Dynamo.DeleteItemConditional(ctx, models.CommentsTable,
		commentKey(tweetID, commentID),
		"userId = :me",
		map[string]types.AttributeValue{
			":me": &types.AttributeValueMemberS{Value: userID},
		})
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return ErrNotCommentOwner
		}
		return err
	}

	if _, err := cs.Dynamo.AddToCounter(ctx, models.TweetsTable, tweetKey(tweetID), "numComments", -1); err != nil {
		return err
	}

	cs.Cache.Invalidate(ctx, commentsFilter(tweetID))
	return nil
}

// ToggleLike adds userID to the comment's liker set, or removes it when
// already present, and fans out the new liker count.
func (cs *CommentService) ToggleLike(ctx context.Context, tweetID, commentID, userID string) (*models.Comment, bool, error) {
	liked := true
	attrs, err := cs.Dynamo.UpdateItemConditional(ctx, models.CommentsTable,
		"ADD likers :user",
		"attribute_exists(commentId) AND (attribute_not_exists(likers) OR NOT contains(likers, :userStr))",
		commentKey(tweetID, commentID),
		map[string]types.AttributeValue{
			":user":    &types.AttributeValueMemberSS{Value: []string{userID}},
			":userStr": &types.AttributeValueMemberS{Value: userID},
		},
		nil)
	if errors.Is(err, ErrConditionFailed) {
		liked = false
		attrs, err = cs.Dynamo.UpdateItemConditional(ctx, models.CommentsTable,
			"DELETE likers :user",
			"contains(likers, :userStr)",
			commentKey(tweetID, commentID),
			map[string]types.AttributeValue{
				":user":    &types.AttributeValueMemberSS{Value: []string{userID}},
				":userStr": &types.AttributeValueMemberS{Value: userID},
			},
			nil)
		if errors.Is(err, ErrConditionFailed) {
			return nil, false, ErrCommentNotFound
		}
	}
	if err != nil {
		return nil, false, err
	}

	var comment models.Comment
	if err := attributevalue.UnmarshalMap(attrs, &comment); err != nil {
		return nil, false, fmt.Errorf("failed to parse comment: %w", err)
	}

	cs.Cache.Invalidate(ctx, commentsFilter(tweetID))

	if cs.Hub != nil {
		cs.Hub.Emit("", models.EventUpdateCommentLikes, map[string]interface{}{
			"tweetId":   tweetID,
			"commentId": commentID,
			"numLikes":  len(comment.Likers),
		})
	}
	return &comment, liked, nil
}

func commentKey(tweetID, commentID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tweetId":   &types.AttributeValueMemberS{Value: tweetID},
		"commentId": &types.AttributeValueMemberS{Value: commentID},
	}
}
