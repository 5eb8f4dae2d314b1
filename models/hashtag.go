package models

// HashtagEdge links a hashtag to a tweet. One edge is written per distinct
// hashtag when the tweet is created, so hashtag search is a single query.
type HashtagEdge struct {
	Hashtag   string `dynamodbav:"hashtag" json:"hashtag"`
	SortKey   string `dynamodbav:"sortKey" json:"-"`
	TweetID   string `dynamodbav:"tweetId" json:"tweetId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// HashtagsTable is the DynamoDB table name for hashtag edges
const HashtagsTable = "Hashtags"
