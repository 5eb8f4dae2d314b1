package services

import (
	"context"
	"fmt"
	"strings"

	"chirp_server/models"
	"chirp_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SearchService serves username prefix search and hashtag search, both
// through the cache-aside accessor with a short 10s TTL since results churn
// quickly.
type SearchService struct {
	Dynamo Store
	Cache  *CacheService
	Tweets *TweetService
}

func searchFilter(kind, term string) map[string]string {
	return map[string]string{"resource": "search", "kind": kind, "term": term}
}

// SearchUsername returns public profiles whose username starts with the
// given prefix, case-insensitively.
func (ss *SearchService) SearchUsername(ctx context.Context, prefix string) ([]map[string]interface{}, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var results []map[string]interface{}
	err := ss.Cache.Fetch(ctx, searchFilter("username", prefix), models.SearchCacheTTL, &results,
		func(ctx context.Context) (interface{}, error) {
			items, err := ss.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UsernameIndex,
				"profileBucket = :bucket AND begins_with(usernameLower, :prefix)",
				map[string]types.AttributeValue{
					":bucket": &types.AttributeValueMemberS{Value: models.UserProfileBucket},
					":prefix": &types.AttributeValueMemberS{Value: prefix},
				},
				nil, 20, false)
			if err != nil {
				return nil, err
			}

			var users []models.User
			if err := attributevalue.UnmarshalListOfMaps(items, &users); err != nil {
				return nil, fmt.Errorf("failed to parse users: %w", err)
			}

			profiles := make([]map[string]interface{}, 0, len(users))
			for _, u := range users {
				profiles = append(profiles, u.PublicProfile())
			}
			return profiles, nil
		})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []map[string]interface{}{}
	}
	return results, nil
}

// SearchHashtag returns the newest tweets carrying the hashtag.
func (ss *SearchService) SearchHashtag(ctx context.Context, hashtag string) ([]models.Tweet, error) {
	hashtag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hashtag), "#"))

	var results []models.Tweet
	err := ss.Cache.Fetch(ctx, searchFilter("hashtag", hashtag), models.SearchCacheTTL, &results,
		func(ctx context.Context) (interface{}, error) {
			edges, err := ss.Dynamo.QueryItemsWithOptions(ctx, models.HashtagsTable,
				"hashtag = :tag",
				map[string]types.AttributeValue{
					":tag": &types.AttributeValueMemberS{Value: hashtag},
				},
				nil, models.FeedPageSize, true)
			if err != nil {
				return nil, err
			}

			tweets := make([]models.Tweet, 0, len(edges))
			for _, edge := range edges {
				tweetID := utils.ExtractString(edge, "tweetId")
				if tweetID == "" {
					continue
				}
				tweet, err := ss.Tweets.GetTweet(ctx, tweetID)
				if err != nil {
					// The tweet may have been deleted after the edge was written.
					continue
				}
				tweets = append(tweets, *tweet)
			}
			return tweets, nil
		})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Tweet{}
	}
	return results, nil
}
