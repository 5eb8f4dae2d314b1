package services

import (
	"context"
	"errors"
	"fmt"
	"log"
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
	ErrTweetNotFound  = errors.New("tweet not found")
	ErrContentTooLong = errors.New("content exceeds 140 characters")
	ErrAlreadyLiked   = errors.New("tweet already liked")
	ErrNotLiked       = errors.New("tweet not liked")
	ErrNoPoll         = errors.New("tweet has no poll")
	ErrPollClosed     = errors.New("poll is closed")
	ErrAlreadyVoted   = errors.New("already voted in this poll")
	ErrBadPollOption  = errors.New("invalid poll option")
	ErrInvalidPoll    = errors.New("polls need 2 to 4 options and a positive duration")
	ErrCannotRetweet  = errors.New("cannot retweet a retweet")
	ErrMissingContent = errors.New("content is required")
)

// TweetService owns tweets, polls and the two feeds.
type TweetService struct {
	Dynamo Store
	Hub    *socket.Hub
}

// CreateTweetInput is the accepted shape for a new tweet.
type CreateTweetInput struct {
	Content   string       `json:"content"`
	Media     string       `json:"media,omitempty"`
	Poll      *models.Poll `json:"poll,omitempty"`
	RetweetOf string       `json:"retweetOf,omitempty"`
}

// CreateTweet validates and stores a tweet, writes its hashtag edges, bumps
// the retweet counter on the original when this is a retweet, and fans the
// creation out to all clients.
func (ts *TweetService) CreateTweet(ctx context.Context, author *models.User, input CreateTweetInput) (*models.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.RetweetOf == "" {
		return nil, ErrMissingContent
	}
	if len([]rune(content)) > models.MaxTweetLength {
		return nil, ErrContentTooLong
	}
	if input.Poll != nil {
		if len(input.Poll.Options) < models.MinPollOptions ||
			len(input.Poll.Options) > models.MaxPollOptions ||
			input.Poll.DurationMinutes <= 0 {
			return nil, ErrInvalidPoll
		}
		input.Poll.Closed = false
		for i := range input.Poll.Options {
			input.Poll.Options[i].Votes = 0
			input.Poll.Options[i].Voters = nil
		}
	}

	var original *models.Tweet
	if input.RetweetOf != "" {
		var err error
		original, err = ts.GetTweet(ctx, input.RetweetOf)
		if err != nil {
			return nil, err
		}
		if original.RetweetOf != "" {
			return nil, ErrCannotRetweet
		}
	}

	now := time.Now()
	tweet := models.Tweet{
		TweetID:     uuid.New().String(),
		UserID:      author.UserID,
		AuthorName:  author.Username,
		AuthorImage: author.ProfileImage,
		Content:     content,
		Media:       input.Media,
		Poll:        input.Poll,
		RetweetOf:   input.RetweetOf,
		Hashtags:    utils.ExtractHashtags(content),
		FeedBucket:  models.GlobalFeedBucket,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
	tweet.SortKey = utils.SortKey(now, tweet.TweetID)

	if err := ts.Dynamo.PutItem(ctx, models.TweetsTable, tweet); err != nil {
		return nil, err
	}

	if len(tweet.Hashtags) > 0 {
		var requests []types.WriteRequest
		for _, tag := range tweet.Hashtags {
			edge := models.HashtagEdge{
				Hashtag:   tag,
				SortKey:   tweet.SortKey,
				TweetID:   tweet.TweetID,
				CreatedAt: tweet.CreatedAt,
			}
			item, err := attributevalue.MarshalMap(edge)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal hashtag edge: %w", err)
			}
			requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}
		if err := ts.Dynamo.BatchWriteItems(ctx, models.HashtagsTable, requests); err != nil {
			log.Printf("⚠️ Failed to index hashtags for tweet %s: %v", tweet.TweetID, err)
		}
	}

	if original != nil {
		_, err := ts.Dynamo.AddToCounter(ctx, models.TweetsTable, tweetKey(original.TweetID), "numRetweets", 1)
		if err != nil {
			log.Printf("⚠️ Failed to bump retweet counter on %s: %v", original.TweetID, err)
		}
		if ts.Hub != nil {
			ts.Hub.Emit("", models.EventRetweeted, map[string]string{"tweetId": original.TweetID})
		}
	}

	if ts.Hub != nil {
		ts.Hub.Emit("", models.EventTweetCreated, map[string]string{
			"tweetId":    tweet.TweetID,
			"userId":     tweet.UserID,
			"authorName": tweet.AuthorName,
		})
	}

	log.Printf("✅ Tweet %s created by @%s", tweet.TweetID, author.Username)
	return &tweet, nil
}

// GetTweet fetches a single tweet.
func (ts *TweetService) GetTweet(ctx context.Context, tweetID string) (*models.Tweet, error) {
	item, err := ts.Dynamo.GetItem(ctx, models.TweetsTable, tweetKey(tweetID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}

	var tweet models.Tweet
	if err := attributevalue.UnmarshalMap(item, &tweet); err != nil {
		return nil, fmt.Errorf("failed to parse tweet: %w", err)
	}
	return &tweet, nil
}

// LiveFeed returns one page of the global timeline, newest first. The cursor
// is the id of the last tweet of the previous page; the returned cursor is
// empty once the feed is exhausted.
func (ts *TweetService) LiveFeed(ctx context.Context, lastTweetID string) ([]models.Tweet, string, error) {
	var startKey map[string]types.AttributeValue
	if lastTweetID != "" {
		last, err := ts.GetTweet(ctx, lastTweetID)
		if err != nil {
			return nil, "", err
		}
		startKey = map[string]types.AttributeValue{
			"feedBucket": &types.AttributeValueMemberS{Value: models.GlobalFeedBucket},
			"sortKey":    &types.AttributeValueMemberS{Value: last.SortKey},
			"tweetId":    &types.AttributeValueMemberS{Value: last.TweetID},
		}
	}

	items, lastEvaluated, err := ts.Dynamo.QueryPage(ctx, models.TweetsTable, models.FeedIndex,
		"feedBucket = :bucket",
		map[string]types.AttributeValue{
			":bucket": &types.AttributeValueMemberS{Value: models.GlobalFeedBucket},
		},
		nil, models.FeedPageSize, startKey)
	if err != nil {
		return nil, "", err
	}

	tweets, err := unmarshalTweets(items)
	if err != nil {
		return nil, "", err
	}

	cursor := ""
	if lastEvaluated != nil && len(tweets) > 0 {
		cursor = tweets[len(tweets)-1].TweetID
	}
	return tweets, cursor, nil
}

// FollowedFeed merges the timelines of every account the user follows into
// one page, newest first, with the same cursor contract as LiveFeed.
func (ts *TweetService) FollowedFeed(ctx context.Context, userID, lastTweetID string) ([]models.Tweet, string, error) {
	edges, err := ts.Dynamo.QueryItems(ctx, models.FollowsTable,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		nil, 500)
	if err != nil {
		return nil, "", err
	}
	if len(edges) == 0 {
		return []models.Tweet{}, "", nil
	}

	boundary := ""
	if lastTweetID != "" {
		last, err := ts.GetTweet(ctx, lastTweetID)
		if err != nil {
			return nil, "", err
		}
		boundary = last.SortKey
	}

	var merged []models.Tweet
	for _, edge := range edges {
		followedID := utils.ExtractString(edge, "followedId")
		if followedID == "" {
			continue
		}

		keyCondition := "userId = :author"
		values := map[string]types.AttributeValue{
			":author": &types.AttributeValueMemberS{Value: followedID},
		}
		if boundary != "" {
			keyCondition += " AND sortKey < :boundary"
			values[":boundary"] = &types.AttributeValueMemberS{Value: boundary}
		}

		items, err := ts.Dynamo.QueryItemsWithIndex(ctx, models.TweetsTable, models.AuthorIndex,
			keyCondition, values, nil, models.FeedPageSize, true)
		if err != nil {
			return nil, "", err
		}
		tweets, err := unmarshalTweets(items)
		if err != nil {
			return nil, "", err
		}
		merged = append(merged, tweets...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortKey > merged[j].SortKey
	})
	if len(merged) > models.FeedPageSize {
		merged = merged[:models.FeedPageSize]
	}

	cursor := ""
	if len(merged) == models.FeedPageSize {
		cursor = merged[len(merged)-1].TweetID
	}
	if merged == nil {
		merged = []models.Tweet{}
	}
	return merged, cursor, nil
}

// Like adds userID to the tweet's liker set and bumps the counter in one
// atomic update. Liking twice is rejected, keeping the counter exact.
func (ts *TweetService) Like(ctx context.Context, tweetID, userID string) (*models.Tweet, error) {
	attrs, err := ts.Dynamo.UpdateItemConditional(ctx, models.TweetsTable,
		"ADD likers :user, numLikes :one",
		"attribute_exists(tweetId) AND (attribute_not_exists(likers) OR NOT contains(likers, :userStr))",
		tweetKey(tweetID),
		map[string]types.AttributeValue{
			":user":    &types.AttributeValueMemberSS{Value: []string{userID}},
			":one":     &types.AttributeValueMemberN{Value: "1"},
			":userStr": &types.AttributeValueMemberS{Value: userID},
		},
		nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// The condition also fails when the tweet does not exist.
			if _, getErr := ts.GetTweet(ctx, tweetID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}

	tweet, err := parseTweet(attrs)
	if err != nil {
		return nil, err
	}

	if ts.Hub != nil {
		ts.Hub.Emit("", models.EventUpdateTweetLikes, map[string]interface{}{
			"tweetId":  tweetID,
			"numLikes": tweet.NumLikes,
		})
	}
	return tweet, nil
}

// Unlike is the inverse of Like; unliking a tweet the user never liked is
// rejected so the counter only moves one unit per real action.
func (ts *TweetService) Unlike(ctx context.Context, tweetID, userID string) (*models.Tweet, error) {
	attrs, err := ts.Dynamo.UpdateItemConditional(ctx, models.TweetsTable,
		"ADD numLikes :minusOne DELETE likers :user",
		"contains(likers, :userStr)",
		tweetKey(tweetID),
		map[string]types.AttributeValue{
			":user":     &types.AttributeValueMemberSS{Value: []string{userID}},
			":minusOne": &types.AttributeValueMemberN{Value: "-1"},
			":userStr":  &types.AttributeValueMemberS{Value: userID},
		},
		nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// The condition also fails when the tweet does not exist.
			if _, getErr := ts.GetTweet(ctx, tweetID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrNotLiked
		}
		return nil, err
	}

	tweet, err := parseTweet(attrs)
	if err != nil {
		return nil, err
	}

	if ts.Hub != nil {
		ts.Hub.Emit("", models.EventUpdateTweetLikes, map[string]interface{}{
			"tweetId":  tweetID,
			"numLikes": tweet.NumLikes,
		})
	}
	return tweet, nil
}

// AddView bumps the view counter.
func (ts *TweetService) AddView(ctx context.Context, tweetID string) error {
	_, err := ts.Dynamo.AddToCounter(ctx, models.TweetsTable, tweetKey(tweetID), "numViews", 1)
	return err
}

// VotePoll records one vote. The poll closes authoritatively when its
// duration has elapsed; a voter's own vote never closes it early, a second
// vote by the same voter is rejected instead.
func (ts *TweetService) VotePoll(ctx context.Context, tweetID, userID string, optionIndex int) (*models.Tweet, error) {
	tweet, err := ts.GetTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.Poll == nil {
		return nil, ErrNoPoll
	}
	if optionIndex < 0 || optionIndex >= len(tweet.Poll.Options) {
		return nil, ErrBadPollOption
	}

	createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tweet timestamp: %w", err)
	}

	if tweet.Poll.Closed {
		return nil, ErrPollClosed
	}
	if tweet.Poll.IsExpired(createdAt, time.Now()) {
		ts.closePoll(ctx, tweetID)
		return nil, ErrPollClosed
	}
	if tweet.Poll.HasVoted(userID) {
		return nil, ErrAlreadyVoted
	}

	optionPath := fmt.Sprintf("poll.options[%d]", optionIndex)
	update := fmt.Sprintf(
		"SET %s.votes = %s.votes + :one, %s.voters = list_append(if_not_exists(%s.voters, :empty), :voter)",
		optionPath, optionPath, optionPath, optionPath)

	// One condition per option keeps a racing duplicate vote out no matter
	// which option it targeted.
	var guards []string
	for i := range tweet.Poll.Options {
		guards = append(guards, fmt.Sprintf(
			"(attribute_not_exists(poll.options[%d].voters) OR NOT contains(poll.options[%d].voters, :userStr))", i, i))
	}
	condition := strings.Join(guards, " AND ")

	attrs, err := ts.Dynamo.UpdateItemConditional(ctx, models.TweetsTable, update, condition,
		tweetKey(tweetID),
		map[string]types.AttributeValue{
			":one":     &types.AttributeValueMemberN{Value: "1"},
			":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":voter":   &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: userID}}},
			":userStr": &types.AttributeValueMemberS{Value: userID},
		},
		nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}

	updated, err := parseTweet(attrs)
	if err != nil {
		return nil, err
	}

	if ts.Hub != nil {
		ts.Hub.Emit("", models.EventPollVote, map[string]interface{}{
			"tweetId":     tweetID,
			"optionIndex": optionIndex,
			"votes":       updated.Poll.Options[optionIndex].Votes,
		})
	}
	return updated, nil
}

// closePoll marks a poll closed once a mutation observes its deadline passed.
func (ts *TweetService) closePoll(ctx context.Context, tweetID string) {
	_, err := ts.Dynamo.UpdateItemConditional(ctx, models.TweetsTable,
		"SET poll.closed = :true",
		"poll.closed = :false",
		tweetKey(tweetID),
		map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
		nil)
	if err != nil {
		if !errors.Is(err, ErrConditionFailed) {
			log.Printf("⚠️ Failed to close poll on tweet %s: %v", tweetID, err)
		}
		return
	}

	if ts.Hub != nil {
		ts.Hub.Emit("", models.EventPollClose, map[string]string{"tweetId": tweetID})
	}
}

func tweetKey(tweetID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tweetId": &types.AttributeValueMemberS{Value: tweetID},
	}
}

func parseTweet(item map[string]types.AttributeValue) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := attributevalue.UnmarshalMap(item, &tweet); err != nil {
		return nil, fmt.Errorf("failed to parse tweet: %w", err)
	}
	return &tweet, nil
}

func unmarshalTweets(items []map[string]types.AttributeValue) ([]models.Tweet, error) {
	tweets := make([]models.Tweet, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &tweets); err != nil {
		return nil, fmt.Errorf("failed to parse tweets: %w", err)
	}
	return tweets, nil
}
